package evaluate

import "github.com/kunal/vetta/internal/llm"

// RubricSchema defines the JSON schema for LLM answer-evaluation
// responses.
var RubricSchema = &llm.Schema{
	Name:        "answer-rubric",
	Description: "A four-dimension rubric score for one interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"accuracy": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "Technical correctness of the answer",
			},
			"depth": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "How far beyond surface level the answer goes",
			},
			"clarity": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "Structure and precision of the explanation",
			},
			"relevance": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
				"description": "How directly the answer addresses the question asked",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Two or three sentences of actionable feedback for the candidate",
			},
		},
		"required":             []any{"accuracy", "depth", "clarity", "relevance", "feedback"},
		"additionalProperties": false,
	},
}
