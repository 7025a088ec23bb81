// Package llm abstracts the model providers behind a single Generate
// call. The interview loop never talks to a vendor SDK directly: question
// generation, answer evaluation, and profile extraction all go through
// Provider and receive schema-validated JSON back.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is implemented by every model backend (and by MockProvider
// in tests). Implementations must be safe for concurrent use.
type Provider interface {
	// Generate performs one completion. When req.Schema is set the
	// provider requests structured output and the returned Content is
	// JSON validated against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier, used for event
	// logging and cost lookup.
	ModelID() string
}

// Request is a single prompt. The interview flow is single-turn: one
// user message carrying the question brief or the answer to grade, plus
// a system prompt that pins the interviewer persona.
type Request struct {
	// System sets the model's role, e.g. "You are a senior technical
	// interviewer for a Backend Engineer role."
	System string

	// Messages is the conversation. Usually length one here; evaluation
	// prompts may replay the question as an assistant turn first.
	Messages []Message

	// Schema, when non-nil, forces structured output. The provider
	// validates the reply against it before returning.
	Schema *Schema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature in [0.0, 1.0]. Left at zero for evaluation so the
	// same answer grades the same way twice.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema the model's reply must satisfy.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "interview-question" or
	// "answer-evaluation". Providers surface it as the structured
	// output or response-format name.
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the schema body as a plain map.
	Definition map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is the validated JSON object when a Schema was requested,
	// otherwise the raw text wrapped as a json.RawMessage.
	Content json.RawMessage

	// Usage reports tokens consumed by this call.
	Usage Usage

	// Model is the model that actually served the request, which can be
	// more specific than the configured ID.
	Model string

	// StopReason is normalized across vendors: "end", "max_tokens",
	// or "error".
	StopReason string
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
