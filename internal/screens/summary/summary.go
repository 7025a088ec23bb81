// Package summary displays the final report for a finished session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	engine "github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/screen"
	"github.com/kunal/vetta/internal/ui/components"
	"github.com/kunal/vetta/internal/ui/layout"
	"github.com/kunal/vetta/internal/ui/theme"
)

// SummaryScreen displays the per-turn breakdown and verdict for a
// terminal session snapshot.
type SummaryScreen struct {
	snap engine.Snapshot
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen from a terminal snapshot.
func New(snap engine.Snapshot) *SummaryScreen {
	return &SummaryScreen{snap: snap}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Interview Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q", "esc", "enter":
			return s, tea.Quit
		}
	}
	return s, nil
}

// AverageScore returns the mean final score across all turns, or 0
// for an empty session.
func (s *SummaryScreen) AverageScore() float64 {
	if len(s.snap.Turns) == 0 {
		return 0
	}
	var sum float64
	for _, t := range s.snap.Turns {
		sum += t.Evaluation.FinalScore
	}
	return sum / float64(len(s.snap.Turns))
}

// Passed reports whether the average score clears the passing line.
func (s *SummaryScreen) Passed() bool {
	return len(s.snap.Turns) > 0 && s.AverageScore() >= s.snap.Config.PassingScore
}

func (s *SummaryScreen) View(width, height int) string {
	snap := s.snap

	var b strings.Builder

	headline := "Interview complete"
	headStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if snap.Status == engine.StatusTerminated {
		headline = "Interview terminated"
		headStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(headStyle.Render(headline)))
	b.WriteString("\n")

	if snap.TerminationReason != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(snap.TerminationReason))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Candidate and verdict line.
	avg := s.AverageScore()
	verdict := theme.Weak.Render("NOT PASSED")
	if s.Passed() {
		verdict = theme.Strong.Render("PASSED")
	}
	statsLine := fmt.Sprintf("%s  ·  %d questions  ·  average %.2f  ·  pass line %.1f  ·  %s",
		snap.Candidate.Name, len(snap.Turns), avg, snap.Config.PassingScore, verdict)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Average", avg/10, true, min(width-8, 56))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if len(snap.Turns) > 0 {
		var acc, dep, cla, rel float64
		for _, t := range snap.Turns {
			acc += t.Evaluation.Criteria.Accuracy
			dep += t.Evaluation.Criteria.Depth
			cla += t.Evaluation.Criteria.Clarity
			rel += t.Evaluation.Criteria.Relevance
		}
		n := float64(len(snap.Turns))
		dims := fmt.Sprintf("accuracy %.1f  ·  depth %.1f  ·  clarity %.1f  ·  relevance %.1f",
			acc/n, dep/n, cla/n, rel/n)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(dims))
		b.WriteString("\n\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 72)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Turns")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for i, turn := range snap.Turns {
		ev := turn.Evaluation
		marks := ""
		if ev.UsedFallback {
			marks += " offline"
		}
		if turn.CriticalFailure {
			marks += " critical"
		}
		line := fmt.Sprintf("  %2d. [%-6s] %-14s %5.2f%s",
			i+1, turn.Question.Difficulty, truncate(turn.Question.Skill, 14), ev.FinalScore, marks)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case ev.FinalScore <= snap.Config.CriticalScore:
			style = style.Foreground(theme.Error)
		case ev.FinalScore <= snap.Config.WeakScore:
			style = style.Foreground(theme.Accent)
		case ev.FinalScore >= snap.Config.StrongScore:
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	// Skill gaps found during analysis.
	if len(snap.Gaps) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Skill gaps")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, gap := range snap.Gaps {
			line := fmt.Sprintf("  %s (%s)", gap.Skill, gap.Severity)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
