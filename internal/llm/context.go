package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose tags the context with what this call is for, e.g.
// "question-generation" or "answer-evaluation". The logging middleware
// stamps it onto the recorded event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom reads the purpose tag, returning "unknown" when unset.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey).(string); ok {
		return p
	}
	return "unknown"
}
