package profile

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kunal/vetta/internal/llm"
)

func TestParseCandidate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"name": "Priya Shah",
			"years_experience": 6,
			"skills": ["Go", "Kafka", "PostgreSQL"],
			"summary": "Backend engineer focused on event pipelines."
		}`),
	})
	p := NewParser(mock)

	got, err := p.ParseCandidate(context.Background(), "resume text here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Priya Shah" || got.YearsExperience != 6 {
		t.Errorf("got %+v", got)
	}
	if len(got.Skills) != 3 || got.Skills[1] != "Kafka" {
		t.Errorf("skills = %v", got.Skills)
	}
}

func TestParseCandidate_NoSkillsRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"name":"X","years_experience":0,"skills":[],"summary":""}`),
	})
	p := NewParser(mock)

	if _, err := p.ParseCandidate(context.Background(), "nothing useful"); err == nil {
		t.Fatal("expected error for extraction with no skills")
	}
}

func TestParseRole(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"title": "Platform Engineer",
			"seniority": "senior",
			"primary_skills": ["Kubernetes", "Go"],
			"secondary_skills": ["Terraform"],
			"description": "Owns the deployment platform."
		}`),
	})
	p := NewParser(mock)

	got, err := p.ParseRole(context.Background(), "job description here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Platform Engineer" || got.Seniority != SenioritySenior {
		t.Errorf("got %+v", got)
	}
	if len(got.PrimarySkills) != 2 || len(got.SecondarySkills) != 1 {
		t.Errorf("skills = %v / %v", got.PrimarySkills, got.SecondarySkills)
	}
}

func TestParseRole_UnknownSeniorityDefaultsToMid(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"title": "Engineer",
			"seniority": "principal",
			"primary_skills": ["Go"],
			"secondary_skills": [],
			"description": "d"
		}`),
	})
	p := NewParser(mock)

	got, err := p.ParseRole(context.Background(), "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Seniority != SeniorityMid {
		t.Errorf("seniority = %q, want mid", got.Seniority)
	}
}

func TestParse_ProviderFailureSurfaces(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue fails every call
	p := NewParser(mock)

	if _, err := p.ParseCandidate(context.Background(), "resume"); err == nil {
		t.Fatal("expected error when the provider is unavailable")
	}
	if _, err := p.ParseRole(context.Background(), "jd"); err == nil {
		t.Fatal("expected error when the provider is unavailable")
	}
}

func TestSamples_UsableAsSubstitutes(t *testing.T) {
	cand := SampleCandidate()
	role := SampleRole()
	if len(cand.Skills) == 0 || len(role.PrimarySkills) == 0 {
		t.Fatal("embedded samples must carry skills")
	}
	if role.Seniority != SeniorityMid {
		t.Errorf("sample role seniority = %q", role.Seniority)
	}
}
