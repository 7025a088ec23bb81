package transcript

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/store"
)

func openTestRepo(t *testing.T) (*store.Store, store.EventRepo) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, s.EventRepo()
}

func snapshotWith(id string, status interview.Status, turns []interview.Turn) interview.Snapshot {
	return interview.Snapshot{
		SessionID: id,
		Status:    status,
		Turns:     turns,
	}
}

func sampleTurn(score float64) interview.Turn {
	return interview.Turn{
		Question: interview.Question{
			ID:         "q-1",
			Text:       "Explain goroutines.",
			Skill:      "Go",
			Difficulty: policy.Easy,
		},
		Answer: "they are lightweight",
		Evaluation: interview.AnswerEvaluation{
			BaseScore:  score,
			FinalScore: score,
		},
		Timestamp: time.Now(),
	}
}

func TestRecorder_PersistsLifecycleAndTurns(t *testing.T) {
	_, repo := openTestRepo(t)
	rec := NewRecorder(repo)
	ctx := context.Background()

	rec.Observe(snapshotWith("s-1", interview.StatusAnalyzing, nil))
	rec.Observe(snapshotWith("s-1", interview.StatusIdle, nil))
	rec.Observe(snapshotWith("s-1", interview.StatusGenerating, []interview.Turn{sampleTurn(7)}))
	snap := snapshotWith("s-1", interview.StatusCompleted, []interview.Turn{sampleTurn(7), sampleTurn(8)})
	rec.Observe(snap)

	turns, err := repo.ListTurns(ctx, "s-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d recorded turns, want 2", len(turns))
	}
	if turns[1].FinalScore != 8 {
		t.Errorf("second turn FinalScore = %v, want 8", turns[1].FinalScore)
	}

	sessions, err := repo.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].LastStatus != "completed" {
		t.Fatalf("sessions = %+v", sessions)
	}
}

func TestRecorder_UnchangedStatusNotDuplicated(t *testing.T) {
	s, repo := openTestRepo(t)
	rec := NewRecorder(repo)

	rec.Observe(snapshotWith("s-1", interview.StatusAnalyzing, nil))
	rec.Observe(snapshotWith("s-1", interview.StatusAnalyzing, nil))

	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM session_events").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d session events, want 1", n)
	}
}

func TestRecorder_ResetStartsNewSession(t *testing.T) {
	_, repo := openTestRepo(t)
	rec := NewRecorder(repo)
	ctx := context.Background()

	rec.Observe(snapshotWith("s-1", interview.StatusGenerating, []interview.Turn{sampleTurn(7)}))
	rec.Observe(snapshotWith("s-2", interview.StatusIdle, nil))

	sessions, err := repo.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
}
