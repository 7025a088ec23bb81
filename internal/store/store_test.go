package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendAndListLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "question-generation",
		InputTokens:  100,
		OutputTokens: 50,
		LatencyMs:    120,
		Success:      true,
		RequestBody:  "[user]\ngenerate a question",
		ResponseBody: `{"question_text":"..."}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "answer-evaluation",
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.ListLLMEvents(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].Purpose != "answer-evaluation" {
		t.Errorf("events[0].Purpose = %q, want answer-evaluation", events[0].Purpose)
	}
	if events[0].Success {
		t.Error("failed request stored as success")
	}
	if events[1].InputTokens != 100 || events[1].OutputTokens != 50 {
		t.Errorf("token counts = %d/%d, want 100/50", events[1].InputTokens, events[1].OutputTokens)
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.RequestBody != "[user]\ngenerate a question" {
		t.Errorf("RequestBody = %q", got.RequestBody)
	}
}

func TestGetLLMEvent_NotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.EventRepo().GetLLMEvent(context.Background(), 9999); err == nil {
		t.Fatal("expected error for missing event")
	}
}

func TestListLLMEvents_Limit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "p", Success: true}); err != nil {
			t.Fatal(err)
		}
	}
	events, err := repo.ListLLMEvents(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestTurnsAndSessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s-1", Kind: "status", Status: "analyzing",
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		err := repo.AppendTurn(ctx, TurnEventData{
			SessionID:    "s-1",
			TurnIndex:    i,
			QuestionID:   "q",
			QuestionText: "Explain indexes.",
			Skill:        "PostgreSQL",
			Difficulty:   "easy",
			Answer:       "b-tree",
			BaseScore:    7.0,
			FinalScore:   7.0,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	err = repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s-1", Kind: "completed", Status: "completed",
	})
	if err != nil {
		t.Fatal(err)
	}

	turns, err := repo.ListTurns(ctx, "s-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].TurnIndex != 0 || turns[1].TurnIndex != 1 {
		t.Error("turns not in play order")
	}

	sessions, err := repo.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	got := sessions[0]
	if got.SessionID != "s-1" || got.Turns != 2 || got.LastStatus != "completed" {
		t.Errorf("summary = %+v", got)
	}
}

func TestSequence_OrdersAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s-1", Kind: "status", Status: "analyzing"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "p", Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendTurn(ctx, TurnEventData{SessionID: "s-1"}); err != nil {
		t.Fatal(err)
	}

	var llmSeq int64
	if err := s.DB().QueryRow("SELECT sequence FROM llm_events").Scan(&llmSeq); err != nil {
		t.Fatal(err)
	}
	var sessSeq, turnSeq int64
	if err := s.DB().QueryRow("SELECT sequence FROM session_events").Scan(&sessSeq); err != nil {
		t.Fatal(err)
	}
	if err := s.DB().QueryRow("SELECT sequence FROM turn_events").Scan(&turnSeq); err != nil {
		t.Fatal(err)
	}
	if !(sessSeq < llmSeq && llmSeq < turnSeq) {
		t.Errorf("sequences not globally ordered: session %d, llm %d, turn %d", sessSeq, llmSeq, turnSeq)
	}
}
