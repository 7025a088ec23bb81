package evaluate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/llm"
	"github.com/kunal/vetta/internal/policy"
)

func testQuestion() interview.Question {
	return interview.Question{
		ID:         "q-1",
		Text:       "How does PostgreSQL decide whether to use an index?",
		Skill:      "PostgreSQL",
		Difficulty: policy.Medium,
		Keywords:   []string{"planner", "statistics", "cost"},
	}
}

func TestEvaluate_ParsesRubric(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"accuracy": 8,
			"depth": 6.5,
			"clarity": 7,
			"relevance": 9,
			"feedback": "Good grasp of the planner. Mention statistics staleness next time."
		}`),
	})
	ev := New(mock, DefaultConfig())

	got, err := ev.Evaluate(context.Background(), testQuestion(), "The planner compares costs using table statistics.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := interview.Criteria{Accuracy: 8, Depth: 6.5, Clarity: 7, Relevance: 9}
	if got.Criteria != want {
		t.Errorf("criteria = %+v, want %+v", got.Criteria, want)
	}
	if got.UsedFallback {
		t.Error("a successful LLM evaluation must not carry the fallback flag")
	}
	if !strings.Contains(got.Feedback, "planner") {
		t.Errorf("feedback = %q", got.Feedback)
	}
}

func TestEvaluate_ClampsOutOfRangeScores(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"accuracy": 11,
			"depth": -1,
			"clarity": 5,
			"relevance": 10.4,
			"feedback": "x"
		}`),
	})
	ev := New(mock, DefaultConfig())

	got, err := ev.Evaluate(context.Background(), testQuestion(), "answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := interview.Criteria{Accuracy: 10, Depth: 0, Clarity: 5, Relevance: 10}
	if got.Criteria != want {
		t.Errorf("criteria = %+v, want clamped %+v", got.Criteria, want)
	}
}

func TestEvaluate_PromptCarriesQuestionAndAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"accuracy":5,"depth":5,"clarity":5,"relevance":5,"feedback":"ok"}`),
	})
	ev := New(mock, DefaultConfig())

	_, err := ev.Evaluate(context.Background(), testQuestion(), "my answer text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"PostgreSQL", "medium", "my answer text", "planner, statistics, cost"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
	if mock.Calls[0].Schema != RubricSchema {
		t.Error("request did not carry the rubric schema")
	}
	if mock.Calls[0].Temperature != 0 {
		t.Errorf("temperature = %v, scoring should be deterministic", mock.Calls[0].Temperature)
	}
}

func TestEvaluate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrRateLimit{Err: errors.New("429")},
	})
	ev := New(mock, DefaultConfig())

	_, err := ev.Evaluate(context.Background(), testQuestion(), "answer")
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T: %v", err, err)
	}
}
