// Package layout provides the frame chrome shared by every screen:
// header bar, key-hint footer, and minimum-size handling.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kunal/vetta/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth reports whether screens should use their narrow layout.
func IsCompactWidth(width int) bool { return width < CompactWidthThreshold }

// IsCompactHeight reports whether screens should use their short layout.
func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether the terminal is below the usable minimum.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is the height left for screen content inside the frame.
func ContentHeight(totalHeight int) int {
	return max(0, totalHeight-HeaderHeight-FooterHeight)
}

// RenderMinSizeMessage fills the terminal with a resize prompt.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar wraps header/footer content in the shared bordered box.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader draws the top bar: app name left, screen title centered,
// and free-form session context on the right (e.g. "Q 3/10 · medium").
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Vetta")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(0, width-4) // border padding

	leftGap := max(1, (inner-lipgloss.Width(center))/2-lipgloss.Width(brand))
	rightGap := max(1, inner-lipgloss.Width(brand)-leftGap-lipgloss.Width(center)-lipgloss.Width(right))

	return bar(brand+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter draws the bottom bar of key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+
				" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content, and footer into the full view,
// stretching content to fill the leftover height.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))

	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + body + "\n" + footer
}
