package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kunal/vetta/internal/ui/theme"
)

// MenuItem is one selectable entry. Disabled items render dimmed and
// are skipped by the cursor.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list driven by up/down/enter (or k/j).
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu builds a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

func (m Menu) Init() tea.Cmd { return nil }

// Update moves the cursor or fires the selected item's action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.nextEnabled(m.Selected, -1)
	case "down", "j":
		m.Selected = m.nextEnabled(m.Selected, +1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// nextEnabled walks from the current index in the given direction to
// the nearest enabled item, staying put when there is none.
func (m Menu) nextEnabled(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return from
}

// View renders the list with a cursor marker on the selected row.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "    "
		switch {
		case item.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			prefix = "  â–¸ "
		}
		b.WriteString(style.Render(prefix+item.Label) + "\n")
	}
	return b.String()
}
