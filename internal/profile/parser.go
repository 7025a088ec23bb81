package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kunal/vetta/internal/llm"
)

// Parser extracts structured records from free-form resume and job
// description text. Extraction is best-effort: callers substitute the
// embedded samples when it fails.
type Parser struct {
	provider llm.Provider
}

func NewParser(provider llm.Provider) *Parser {
	return &Parser{provider: provider}
}

const candidateSystemPrompt = `You extract structured data from a resume.

Rules:
- name: the candidate's full name as written. Use "Candidate" if none appears.
- years_experience: total professional years, rounded down. Infer from dates when not stated outright; use 0 if nothing indicates experience.
- skills: concrete technologies and tools the resume claims hands-on use of. Keep the resume's own spelling. No soft skills.
- summary: one or two sentences describing the candidate's background.
- Extract only what the text supports. Never invent skills or experience.`

const roleSystemPrompt = `You extract structured data from a job description.

Rules:
- title: the position title as written.
- seniority: "junior", "mid", or "senior". Infer from the title and the experience asked for; use "mid" when unclear.
- primary_skills: technologies named as required or essential.
- secondary_skills: technologies named as nice-to-have, preferred, or a plus.
- description: one or two sentences summarizing the position.
- A skill goes in exactly one list. When the posting is ambiguous, treat it as primary.`

type candidateOutput struct {
	Name            string   `json:"name"`
	YearsExperience int      `json:"years_experience"`
	Skills          []string `json:"skills"`
	Summary         string   `json:"summary"`
}

type roleOutput struct {
	Title           string   `json:"title"`
	Seniority       string   `json:"seniority"`
	PrimarySkills   []string `json:"primary_skills"`
	SecondarySkills []string `json:"secondary_skills"`
	Description     string   `json:"description"`
}

// ParseCandidate extracts a Candidate from resume text.
func (p *Parser) ParseCandidate(ctx context.Context, text string) (*Candidate, error) {
	ctx = llm.WithPurpose(ctx, "profile-extraction")

	raw, err := p.extract(ctx, candidateSystemPrompt, text, CandidateSchema)
	if err != nil {
		return nil, err
	}

	var out candidateOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(out.Skills) == 0 {
		return nil, fmt.Errorf("extraction found no skills in resume text")
	}

	return &Candidate{
		Name:            out.Name,
		YearsExperience: out.YearsExperience,
		Skills:          out.Skills,
		Summary:         out.Summary,
	}, nil
}

// ParseRole extracts a Role from job description text.
func (p *Parser) ParseRole(ctx context.Context, text string) (*Role, error) {
	ctx = llm.WithPurpose(ctx, "role-extraction")

	raw, err := p.extract(ctx, roleSystemPrompt, text, RoleSchema)
	if err != nil {
		return nil, err
	}

	var out roleOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(out.PrimarySkills) == 0 {
		return nil, fmt.Errorf("extraction found no required skills in job description")
	}

	return &Role{
		Title:           out.Title,
		Seniority:       parseSeniority(out.Seniority),
		PrimarySkills:   out.PrimarySkills,
		SecondarySkills: out.SecondarySkills,
		Description:     out.Description,
	}, nil
}

func (p *Parser) extract(ctx context.Context, system, text string, schema *llm.Schema) (json.RawMessage, error) {
	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: text},
		},
		Schema:    schema,
		MaxTokens: 1024,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM extraction failed: %w", err)
	}
	return resp.Content, nil
}

func parseSeniority(s string) Seniority {
	switch Seniority(strings.ToLower(strings.TrimSpace(s))) {
	case SeniorityJunior:
		return SeniorityJunior
	case SenioritySenior:
		return SenioritySenior
	default:
		return SeniorityMid
	}
}
