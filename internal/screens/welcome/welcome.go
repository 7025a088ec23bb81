// Package welcome shows the pre-interview screen: the role, the
// candidate, and the skill-gap analysis that gates the session.
package welcome

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/profile"
	"github.com/kunal/vetta/internal/router"
	"github.com/kunal/vetta/internal/screen"
	"github.com/kunal/vetta/internal/ui/components"
	"github.com/kunal/vetta/internal/ui/layout"
	"github.com/kunal/vetta/internal/ui/theme"
)

// analysisDoneMsg is sent when profile analysis completes.
type analysisDoneMsg struct {
	Err error
}

// WelcomeScreen gates the interview behind the analysis step.
type WelcomeScreen struct {
	controller       *interview.Controller
	role             profile.Role
	candidate        profile.Candidate
	interviewFactory func() screen.Screen
	menu             components.Menu
	analyzing        bool
	errMsg           string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the welcome screen. interviewFactory builds the screen
// shown once the session is ready.
func New(c *interview.Controller, role profile.Role, cand profile.Candidate, interviewFactory func() screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		controller:       c,
		role:             role,
		candidate:        cand,
		interviewFactory: interviewFactory,
	}
	w.menu = components.NewMenu([]components.MenuItem{
		{Label: "Begin interview", Action: w.beginAction},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return w
}

// beginAction starts the analysis step once.
func (w *WelcomeScreen) beginAction() tea.Cmd {
	if w.analyzing {
		return nil
	}
	w.analyzing = true
	w.errMsg = ""
	return w.analyze()
}

func (w *WelcomeScreen) Title() string {
	return "Interview Setup"
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisDoneMsg:
		w.analyzing = false
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			return w, nil
		}
		next := w.interviewFactory()
		return w, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyMsg:
		if w.analyzing {
			return w, nil
		}
		var cmd tea.Cmd
		w.menu, cmd = w.menu.Update(msg)
		return w, cmd
	}

	return w, nil
}

// analyze drives the controller through the analysis phase.
func (w *WelcomeScreen) analyze() tea.Cmd {
	return func() tea.Msg {
		if err := w.controller.StartAnalysis(); err != nil {
			return analysisDoneMsg{Err: err}
		}
		if err := w.controller.InitializeSession(w.role, w.candidate); err != nil {
			return analysisDoneMsg{Err: err}
		}
		return analysisDoneMsg{}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")
	sections = append(sections, theme.Subtitle.Render("Technical Interview Session"))
	sections = append(sections, "")

	roleCard := theme.Card.Render(strings.Join([]string{
		theme.Selected.Render("Role"),
		fmt.Sprintf("%s (%s)", w.role.Title, w.role.Seniority),
		"Required:  " + strings.Join(w.role.PrimarySkills, ", "),
		"Preferred: " + strings.Join(w.role.SecondarySkills, ", "),
	}, "\n"))

	candCard := theme.Card.Render(strings.Join([]string{
		theme.Selected.Render("Candidate"),
		fmt.Sprintf("%s — %d years experience", w.candidate.Name, w.candidate.YearsExperience),
		"Skills: " + strings.Join(w.candidate.Skills, ", "),
	}, "\n"))

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, roleCard, "  ", candCard))
	sections = append(sections, "")

	switch {
	case w.errMsg != "":
		sections = append(sections, theme.Weak.Render("Setup failed: "+w.errMsg))
	case w.analyzing:
		sections = append(sections, theme.Hint.Render("analyzing candidate profile..."))
	default:
		sections = append(sections, w.menu.View())
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
