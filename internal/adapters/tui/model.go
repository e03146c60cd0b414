// Package tui provides the interactive command picker.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Item is one selectable command.
type Item struct {
	Name  string
	Short string
}

// Model is the picker state. Chosen is set once the user confirms an item.
type Model struct {
	Items  []Item
	Cursor int
	Chosen string
}

// NewModel creates a picker over items with the cursor on the first one.
func NewModel(items []Item) Model {
	return Model{Items: items}
}

// Init initializes the model.
//
//nolint:gocritic // hugeParam ignored
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses. The cursor wraps at both ends.
//
//nolint:gocritic // hugeParam ignored
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Quit):
		return m, tea.Quit
	case len(m.Items) == 0:
		return m, nil
	case key.Matches(keyMsg, keys.Up):
		m.Cursor = (m.Cursor - 1 + len(m.Items)) % len(m.Items)
	case key.Matches(keyMsg, keys.Down):
		m.Cursor = (m.Cursor + 1) % len(m.Items)
	case key.Matches(keyMsg, keys.Choose):
		m.Chosen = m.Items[m.Cursor].Name
		return m, tea.Quit
	}
	return m, nil
}
