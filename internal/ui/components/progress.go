package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kunal/vetta/internal/ui/theme"
)

// ProgressBar is a horizontal fill bar, used for the average score on
// the summary screen.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar, splitting Width between label, track, and the
// optional percentage readout.
func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}
	track := max(4, p.Width-lipgloss.Width(out)-percentWidth)

	filled := int(float64(track) * p.Percent)
	filled = min(max(filled, 0), track)

	out += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", track-filled))

	if p.ShowPercent {
		out += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}
	return out
}
