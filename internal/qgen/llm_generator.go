package qgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/llm"
	"github.com/kunal/vetta/internal/policy"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	QuestionText string   `json:"question_text"`
	Skill        string   `json:"skill"`
	Difficulty   string   `json:"difficulty"`
	Keywords     []string `json:"expected_keywords"`
}

// Generate produces a single question for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*interview.Question, error) {
	ctx = llm.WithPurpose(ctx, "question-generation")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	// The requested difficulty is authoritative: the generator writes
	// for it, the policy engine scores against it. A mismatched echo in
	// the response is ignored.
	if raw.Difficulty != input.Difficulty.String() {
		if _, perr := policy.ParseDifficulty(raw.Difficulty); perr != nil {
			return nil, fmt.Errorf("failed to parse LLM response: %w", perr)
		}
	}

	q := &interview.Question{
		ID:         uuid.New().String(),
		Text:       raw.QuestionText,
		Skill:      raw.Skill,
		Difficulty: input.Difficulty,
		Keywords:   raw.Keywords,
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}

	return q, nil
}
