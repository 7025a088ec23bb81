// Package fallback provides the deterministic heuristic used when no
// external evaluator or question generator is available. Scores are a
// function of keyword coverage and answer length only, so any session
// run in fallback mode is exactly reproducible.
package fallback

import (
	"context"
	"fmt"
	"strings"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/policy"
)

// Evaluator scores answers without consulting any external service.
// It implements interview.Evaluator and never returns an error.
type Evaluator struct {
	cfg policy.Config
}

func NewEvaluator(cfg policy.Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate derives a rubric from keyword hits and answer length. The
// score is capped below a perfect 10: an unverified heuristic must not
// report full confidence.
func (e *Evaluator) Evaluate(_ context.Context, q interview.Question, answer string) (interview.RawEvaluation, error) {
	lower := strings.ToLower(answer)
	hits := 0
	for _, kw := range q.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			hits++
		}
	}

	score := e.cfg.FallbackBaseScore + float64(hits)*e.cfg.FallbackKeywordValue
	long := len(answer) >= e.cfg.FallbackLengthChars
	if long {
		score += e.cfg.FallbackLengthBonus
	}
	if score > e.cfg.FallbackScoreCeiling {
		score = e.cfg.FallbackScoreCeiling
	}

	// Accuracy tracks the heuristic directly. Depth is discounted for
	// short answers, clarity and relevance sit between the heuristic
	// and a neutral midpoint since the heuristic cannot judge either.
	depth := score
	if !long {
		depth = clamp10(score - 2.0)
	}
	crit := interview.Criteria{
		Accuracy:  clamp10(score),
		Depth:     depth,
		Clarity:   clamp10((score + 5.0) / 2.0),
		Relevance: clamp10((score*3.0 + 5.0) / 4.0),
	}

	feedback := fmt.Sprintf(
		"Heuristic evaluation: matched %d of %d expected keywords; answer length %d characters.",
		hits, len(q.Keywords), len(answer))

	return interview.RawEvaluation{Criteria: crit, Feedback: feedback}, nil
}

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
