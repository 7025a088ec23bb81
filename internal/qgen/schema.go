package qgen

import "github.com/kunal/vetta/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation
// responses.
var QuestionSchema = &llm.Schema{
	Name:        "interview-question",
	Description: "A single technical interview question targeting one skill",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "The question asked of the candidate, self-contained plain text",
			},
			"skill": map[string]any{
				"type":        "string",
				"description": "The single skill this question probes. Must be one of the role's required skills, spelled exactly as given.",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard"},
				"description": "The difficulty this question was written for",
			},
			"expected_keywords": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "3 to 6 terms a strong answer would mention, lowercase",
			},
		},
		"required":             []any{"question_text", "skill", "difficulty", "expected_keywords"},
		"additionalProperties": false,
	},
}
