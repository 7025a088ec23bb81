package qgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kunal/vetta/internal/llm"
	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/profile"
)

func testInput() GenerateInput {
	return GenerateInput{
		Role: profile.Role{
			Title:           "Backend Engineer",
			Seniority:       profile.SeniorityMid,
			PrimarySkills:   []string{"Go", "PostgreSQL"},
			SecondarySkills: []string{"Redis"},
		},
		Candidate: profile.Candidate{
			Name:            "Sam",
			YearsExperience: 4,
			Skills:          []string{"Go", "PostgreSQL"},
		},
		Difficulty: policy.Medium,
	}
}

func validQuestionJSON() json.RawMessage {
	return json.RawMessage(`{
		"question_text": "How would you find and fix a goroutine leak in a long-running service?",
		"skill": "Go",
		"difficulty": "medium",
		"expected_keywords": ["pprof", "blocked", "channel", "context"]
	}`)
}

func TestGenerate_ValidQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validQuestionJSON(),
	})
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(q.Text, "goroutine leak") {
		t.Errorf("unexpected text: %q", q.Text)
	}
	if q.Skill != "Go" {
		t.Errorf("expected skill Go, got %q", q.Skill)
	}
	if q.Difficulty != policy.Medium {
		t.Errorf("expected medium difficulty, got %v", q.Difficulty)
	}
	if q.ID == "" {
		t.Error("expected a generated question ID")
	}
	if len(q.Keywords) != 4 {
		t.Errorf("expected 4 keywords, got %d", len(q.Keywords))
	}
}

func TestGenerate_RequestedDifficultyWins(t *testing.T) {
	// The model echoes a different difficulty; the requested one is
	// authoritative.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"question_text": "What is a prepared statement?",
			"skill": "PostgreSQL",
			"difficulty": "hard",
			"expected_keywords": ["parse", "plan", "parameter"]
		}`),
	})
	gen := New(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Difficulty != policy.Medium {
		t.Errorf("difficulty = %v, want the requested medium", q.Difficulty)
	}
}

func TestGenerate_PromptContainsContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validQuestionJSON(),
	})
	gen := New(mock, DefaultConfig())

	input := testInput()
	input.AskedTexts = []string{"Explain connection pooling."}
	if _, err := gen.Generate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 LLM call, got %d", len(mock.Calls))
	}
	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{
		"Backend Engineer",
		"Go, PostgreSQL",
		"Difficulty: medium",
		"Explain connection pooling.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
	if mock.Calls[0].Schema != QuestionSchema {
		t.Error("request did not carry the question schema")
	}
}

func TestGenerate_DedupListTruncated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: validQuestionJSON(),
	})
	cfg := DefaultConfig()
	cfg.MaxAskedTexts = 2
	gen := New(mock, cfg)

	input := testInput()
	input.AskedTexts = []string{"first", "second", "third", "fourth"}
	if _, err := gen.Generate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := mock.Calls[0].Messages[0].Content
	if strings.Contains(msg, "first") || strings.Contains(msg, "second") {
		t.Error("prompt should only keep the most recent asked questions")
	}
	if !strings.Contains(msg, "third") || !strings.Contains(msg, "fourth") {
		t.Error("prompt dropped recent asked questions")
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput())
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T: %v", err, err)
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{
			name:    "empty text",
			json:    `{"question_text":"  ","skill":"Go","difficulty":"medium","expected_keywords":["a","b","c"]}`,
			wantErr: "question_text is empty",
		},
		{
			name:    "too few keywords",
			json:    `{"question_text":"Explain channels.","skill":"Go","difficulty":"medium","expected_keywords":["a","b"]}`,
			wantErr: "expected_keywords",
		},
		{
			name:    "blank keyword",
			json:    `{"question_text":"Explain channels.","skill":"Go","difficulty":"medium","expected_keywords":["a","b"," "]}`,
			wantErr: "empty entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.json)})
			gen := New(mock, DefaultConfig())

			_, err := gen.Generate(context.Background(), testInput())
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if !strings.Contains(verr.Message, tt.wantErr) {
				t.Errorf("message = %q, want it to mention %q", verr.Message, tt.wantErr)
			}
			if !verr.Retryable {
				t.Error("structural failures should be retryable")
			}
		})
	}
}

func TestSkillScopeValidator(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"question_text": "Explain the CAP theorem.",
			"skill": "Cassandra",
			"difficulty": "medium",
			"expected_keywords": ["consistency", "availability", "partition"]
		}`),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testInput())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Validator != "skill-scope" {
		t.Errorf("validator = %q, want skill-scope", verr.Validator)
	}
}

func TestSkillScopeValidator_SecondarySkillAccepted(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"question_text": "When would you use a Redis sorted set?",
			"skill": "Redis",
			"difficulty": "medium",
			"expected_keywords": ["zadd", "score", "ranking"]
		}`),
	})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
