package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	engine "github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/profile"
	"github.com/kunal/vetta/internal/skillgap"
)

func turnWith(skill string, d policy.Difficulty, final float64, fb bool) engine.Turn {
	return engine.Turn{
		Question: engine.Question{Skill: skill, Difficulty: d},
		Evaluation: engine.AnswerEvaluation{
			FinalScore:   final,
			UsedFallback: fb,
		},
	}
}

func completedSnap(turns ...engine.Turn) engine.Snapshot {
	return engine.Snapshot{
		Status:    engine.StatusCompleted,
		Turns:     turns,
		Candidate: profile.Candidate{Name: "Sam Rivera"},
		Config:    policy.Default(),
	}
}

func TestAverageScore(t *testing.T) {
	s := New(completedSnap(
		turnWith("Go", policy.Easy, 8.0, false),
		turnWith("Go", policy.Medium, 6.0, false),
	))
	if got := s.AverageScore(); got != 7.0 {
		t.Errorf("AverageScore() = %v, want 7.0", got)
	}
}

func TestAverageScoreEmptySession(t *testing.T) {
	s := New(completedSnap())
	if got := s.AverageScore(); got != 0 {
		t.Errorf("AverageScore() = %v, want 0", got)
	}
	if s.Passed() {
		t.Error("empty session must not pass")
	}
}

func TestPassedAgainstPassLine(t *testing.T) {
	pass := New(completedSnap(turnWith("Go", policy.Easy, 6.0, false)))
	if !pass.Passed() {
		t.Error("average 6.0 should pass the default 6.0 line")
	}
	fail := New(completedSnap(turnWith("Go", policy.Easy, 5.9, false)))
	if fail.Passed() {
		t.Error("average 5.9 should not pass")
	}
}

func TestViewShowsVerdictAndTurns(t *testing.T) {
	s := New(completedSnap(
		turnWith("Go", policy.Easy, 8.2, false),
		turnWith("PostgreSQL", policy.Medium, 7.1, true),
	))

	view := s.View(100, 40)
	for _, want := range []string{"Interview complete", "Sam Rivera", "PASSED", "Go", "PostgreSQL", "offline"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewShowsTerminationReason(t *testing.T) {
	snap := completedSnap(turnWith("Go", policy.Easy, 1.0, false))
	snap.Status = engine.StatusTerminated
	snap.TerminationReason = "too many time violations"

	view := New(snap).View(100, 40)
	if !strings.Contains(view, "Interview terminated") {
		t.Error("expected terminated headline")
	}
	if !strings.Contains(view, "too many time violations") {
		t.Error("expected termination reason in view")
	}
	if !strings.Contains(view, "NOT PASSED") {
		t.Error("expected failing verdict")
	}
}

func TestViewShowsSkillGaps(t *testing.T) {
	snap := completedSnap(turnWith("Go", policy.Easy, 7.0, false))
	snap.Gaps = []skillgap.Gap{{Skill: "Kubernetes", Severity: skillgap.SeverityPrimary}}

	view := New(snap).View(100, 40)
	if !strings.Contains(view, "Kubernetes") {
		t.Error("expected gap skill in view")
	}
	if !strings.Contains(view, "PRIMARY") {
		t.Error("expected gap severity in view")
	}
}

func TestQuitKeys(t *testing.T) {
	s := New(completedSnap())
	for _, key := range []tea.KeyPressMsg{
		{Code: 'q', Text: "q"},
		{Code: tea.KeyEscape},
		{Code: tea.KeyEnter},
	} {
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Errorf("expected quit command for %v", key)
		}
	}
}
