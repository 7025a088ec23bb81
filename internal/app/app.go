// Package app wires the screens, router, and layout into the root
// Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kunal/vetta/internal/fallback"
	"github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/profile"
	"github.com/kunal/vetta/internal/qgen"
	"github.com/kunal/vetta/internal/router"
	"github.com/kunal/vetta/internal/screen"
	interviewscreen "github.com/kunal/vetta/internal/screens/interview"
	"github.com/kunal/vetta/internal/screens/summary"
	"github.com/kunal/vetta/internal/screens/welcome"
	"github.com/kunal/vetta/internal/ui/layout"
)

// Options carries the dependencies for one interview run.
type Options struct {
	Controller *interview.Controller
	Generator  qgen.Generator // nil runs fully offline
	Pool       *fallback.Pool
	Role       profile.Role
	Candidate  profile.Candidate
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	controller *interview.Controller
	width      int
	height     int
}

// newAppModel builds the screen stack starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	interviewFactory := func() screen.Screen {
		return interviewscreen.New(opts.Controller, opts.Generator, opts.Pool,
			func(snap interview.Snapshot) screen.Screen {
				return summary.New(snap)
			})
	}
	start := welcome.New(opts.Controller, opts.Role, opts.Candidate, interviewFactory)
	return AppModel{
		router:     router.New(start),
		controller: opts.Controller,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.statusLine(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// statusLine summarizes session progress for the header's right side.
func (m AppModel) statusLine() string {
	if m.controller == nil {
		return ""
	}
	snap := m.controller.Snapshot()
	switch snap.Status {
	case interview.StatusGenerating, interview.StatusInterviewing, interview.StatusEvaluating:
		return fmt.Sprintf("Q %d/%d · %s", len(snap.Turns)+1, snap.Config.MaxQuestions, snap.Difficulty)
	case interview.StatusCompleted, interview.StatusTerminated:
		return string(snap.Status)
	}
	return ""
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
