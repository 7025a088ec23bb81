package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	engine "github.com/kunal/vetta/internal/interview"
	"github.com/kunal/vetta/internal/ui/components"
	"github.com/kunal/vetta/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showingFeedback && s.lastTurn != nil {
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question with the answer timer and
// session progress.
func (s *InterviewScreen) renderQuestion(width int) string {
	snap := s.controller.Snapshot()
	if snap.ActiveQuestion == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Generating question...")
	}

	q := snap.ActiveQuestion

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Skill: %s", q.Skill))

	timerStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if int(s.elapsed.Seconds()) > snap.Config.AnswerTimeLimitSec {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	}
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s  ", len(snap.Turns)+1, snap.Config.MaxQuestions, q.Difficulty)) +
		timerStyle.Render(formatElapsed(s.elapsed))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 80)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
	b.WriteString("\n\n")

	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
	b.WriteString(answerLine)

	if snap.EvalMode == engine.ModeFallback {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("offline scoring active"))
	}

	return b.String()
}

// renderFeedback renders the per-turn score breakdown.
func (s *InterviewScreen) renderFeedback(width int) string {
	turn := s.lastTurn
	ev := turn.Evaluation

	var b strings.Builder
	b.WriteString("\n\n")

	headline := theme.Strong
	label := "Strong answer"
	switch {
	case ev.FinalScore <= s.controller.Snapshot().Config.CriticalScore:
		headline = theme.Weak
		label = "Critical failure"
	case ev.FinalScore <= s.controller.Snapshot().Config.WeakScore:
		headline = theme.Warning
		label = "Weak answer"
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(headline.Render(fmt.Sprintf("%s  %.2f / 10", label, ev.FinalScore))))
	b.WriteString("\n\n")

	breakdown := []string{
		fmt.Sprintf("accuracy %.1f  depth %.1f  clarity %.1f  relevance %.1f",
			ev.Criteria.Accuracy, ev.Criteria.Depth, ev.Criteria.Clarity, ev.Criteria.Relevance),
		fmt.Sprintf("base %.2f  time penalty -%.1f  gap penalty -%.2f",
			ev.BaseScore, ev.TimePenalty, ev.GapPenalty),
	}
	for _, line := range breakdown {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(line))
		b.WriteString("\n")
	}

	if ev.Feedback != "" {
		b.WriteString("\n")
		fbStyle := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fbStyle.Render(ev.Feedback)))
		b.WriteString("\n")
	}

	if turn.DifficultyAfter != turn.DifficultyBefore {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("difficulty %s -> %s", turn.DifficultyBefore, turn.DifficultyAfter)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	next := components.NewButton("Continue", true, nil)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, next.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("press any key"))

	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
