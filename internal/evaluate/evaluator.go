// Package evaluate scores candidate answers with an LLM rubric. It
// implements the evaluator contract the session controller consumes;
// when the provider fails, the controller degrades to the deterministic
// heuristic instead.
package evaluate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/llm"
)

// Config controls the LLM evaluation request.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness. Scoring wants
	// repeatability, so the default is 0.
	Temperature float64
}

// DefaultConfig returns the recommended evaluation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0,
	}
}

// Evaluator implements interview.Evaluator using an LLM provider.
type Evaluator struct {
	provider llm.Provider
	config   Config
}

// New creates an Evaluator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Evaluator {
	return &Evaluator{provider: provider, config: cfg}
}

// rubricOutput is the raw LLM response before clamping.
type rubricOutput struct {
	Accuracy  float64 `json:"accuracy"`
	Depth     float64 `json:"depth"`
	Clarity   float64 `json:"clarity"`
	Relevance float64 `json:"relevance"`
	Feedback  string  `json:"feedback"`
}

// Evaluate scores one answer against the four-dimension rubric. Values
// outside [0,10] are clamped rather than rejected; a slightly
// out-of-range score is still a usable judgment.
func (e *Evaluator) Evaluate(ctx context.Context, q interview.Question, answer string) (interview.RawEvaluation, error) {
	ctx = llm.WithPurpose(ctx, "answer-evaluation")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(q, answer)},
		},
		Schema:      RubricSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return interview.RawEvaluation{}, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	var raw rubricOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return interview.RawEvaluation{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	return interview.RawEvaluation{
		Criteria: interview.Criteria{
			Accuracy:  clamp(raw.Accuracy),
			Depth:     clamp(raw.Depth),
			Clarity:   clamp(raw.Clarity),
			Relevance: clamp(raw.Relevance),
		},
		Feedback: raw.Feedback,
	}, nil
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
