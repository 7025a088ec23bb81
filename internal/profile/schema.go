package profile

import "github.com/kunal/vetta/internal/llm"

// CandidateSchema defines the JSON schema for resume extraction.
var CandidateSchema = &llm.Schema{
	Name:        "candidate-profile",
	Description: "Structured candidate profile extracted from a resume",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "The candidate's full name",
			},
			"years_experience": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"description": "Total professional years of experience",
			},
			"skills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Technologies the candidate claims hands-on experience with",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "One or two sentence background summary",
			},
		},
		"required":             []any{"name", "years_experience", "skills", "summary"},
		"additionalProperties": false,
	},
}

// RoleSchema defines the JSON schema for job description extraction.
var RoleSchema = &llm.Schema{
	Name:        "role-profile",
	Description: "Structured role requirements extracted from a job description",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The position title",
			},
			"seniority": map[string]any{
				"type":        "string",
				"enum":        []any{"junior", "mid", "senior"},
				"description": "The seniority level the posting asks for",
			},
			"primary_skills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Technologies listed as required",
			},
			"secondary_skills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Technologies listed as nice-to-have",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One or two sentence position summary",
			},
		},
		"required":             []any{"title", "seniority", "primary_skills", "secondary_skills", "description"},
		"additionalProperties": false,
	},
}
