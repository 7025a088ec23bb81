// Package qgen generates interview questions with an LLM provider,
// validating every response before it reaches a session.
package qgen

import (
	"context"

	"github.com/kunal/vetta/internal/interview"
)

// Generator produces interview questions.
type Generator interface {
	// Generate produces a single question for the given input context.
	// Returns a validated Question or an error. All configured
	// validators run before returning.
	Generate(ctx context.Context, input GenerateInput) (*interview.Question, error)
}
