package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the command list followed by the key help line.
//
//nolint:gocritic // hugeParam ignored
func (m Model) View() string {
	if m.Chosen != "" {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("COMMANDS") + "\n\n")

	if len(m.Items) == 0 {
		s.WriteString(itemStyle.Render(descStyle.Render("no commands available")) + "\n")
	}

	width := 0
	for _, item := range m.Items {
		width = max(width, lipgloss.Width(item.Name))
	}

	for i, item := range m.Items {
		name := item.Name + strings.Repeat(" ", width-lipgloss.Width(item.Name))
		if i == m.Cursor {
			s.WriteString("> " + selectedStyle.Render(name))
		} else {
			s.WriteString(itemStyle.Render(name))
		}
		s.WriteString("  " + descStyle.Render(item.Short) + "\n")
	}

	help := make([]string, 0, len(keys.bindings()))
	for _, b := range keys.bindings() {
		help = append(help, b.Help().Key+" "+b.Help().Desc)
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")) + "\n")

	return s.String()
}
