package welcome

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/policy"
	"github.com/kunal/vetta/internal/profile"
	"github.com/kunal/vetta/internal/router"
	"github.com/kunal/vetta/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "interview" }
func (s *stubScreen) Title() string                           { return "Interview" }

type stubEvaluator struct{}

func (stubEvaluator) Evaluate(context.Context, interview.Question, string) (interview.RawEvaluation, error) {
	return interview.RawEvaluation{}, nil
}

func testRole() profile.Role {
	return profile.Role{
		Title:           "Backend Engineer",
		Seniority:       profile.SeniorityMid,
		PrimarySkills:   []string{"Go", "PostgreSQL"},
		SecondarySkills: []string{"Docker"},
	}
}

func testCandidate() profile.Candidate {
	return profile.Candidate{
		Name:            "Sam Rivera",
		YearsExperience: 4,
		Skills:          []string{"Go"},
	}
}

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	c := interview.NewController(policy.Default(), stubEvaluator{}, stubEvaluator{})
	return New(c, testRole(), testCandidate(), factory), &callCount
}

func TestViewShowsRoleAndCandidate(t *testing.T) {
	w, _ := newTestWelcome()

	view := w.View(100, 40)
	for _, want := range []string{"Backend Engineer", "Sam Rivera", "PostgreSQL", "Begin interview"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterRunsAnalysis(t *testing.T) {
	w, _ := newTestWelcome()

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected analysis command on enter")
	}
	if !w.analyzing {
		t.Error("expected analyzing flag to be set")
	}

	msg := cmd()
	done, ok := msg.(analysisDoneMsg)
	if !ok {
		t.Fatalf("expected analysisDoneMsg, got %T", msg)
	}
	if done.Err != nil {
		t.Fatalf("analysis failed: %v", done.Err)
	}

	if w.controller.Snapshot().Status != interview.StatusIdle {
		t.Errorf("expected idle after analysis, got %v", w.controller.Snapshot().Status)
	}
}

func TestAnalysisSuccessReplacesWithInterview(t *testing.T) {
	w, calls := newTestWelcome()

	_, cmd := w.Update(analysisDoneMsg{})
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	if *calls != 1 {
		t.Errorf("expected factory called once, got %d", *calls)
	}

	msg := cmd()
	rep, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if rep.Screen.Title() != "Interview" {
		t.Errorf("unexpected screen %q", rep.Screen.Title())
	}
}

func TestAnalysisErrorIsShown(t *testing.T) {
	w, calls := newTestWelcome()

	_, cmd := w.Update(analysisDoneMsg{Err: context.DeadlineExceeded})
	if cmd != nil {
		t.Error("expected no command on failure")
	}
	if *calls != 0 {
		t.Error("factory should not run on failure")
	}

	view := w.View(100, 40)
	if !strings.Contains(view, "Setup failed") {
		t.Error("expected failure message in view")
	}
}

func TestEnterIgnoredWhileAnalyzing(t *testing.T) {
	w, _ := newTestWelcome()
	w.analyzing = true

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected enter to be ignored while analyzing")
	}
}

func TestMenuQuitOption(t *testing.T) {
	w, _ := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg from quit menu item")
	}
}

func TestBannerRendersAtNarrowWidth(t *testing.T) {
	out := RenderBanner(40)
	if !strings.Contains(out, "V E T T A") {
		t.Error("expected compact banner at narrow width")
	}
}
