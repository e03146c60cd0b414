package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Picker runs the command picker as a bubbletea program.
type Picker struct {
	in  io.Reader
	out io.Writer
}

// NewPicker creates a Picker reading keys from in and drawing to out.
func NewPicker(in io.Reader, out io.Writer) *Picker {
	return &Picker{in: in, out: out}
}

// Pick lets the user choose one of items. It returns the chosen name,
// or "" when the user quit without choosing.
func (p *Picker) Pick(ctx context.Context, items []Item) (string, error) {
	if f, ok := p.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return "", domain.ErrNotInteractive
	}

	program := tea.NewProgram(
		NewModel(items),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		return "", zerr.Wrap(err, "command picker failed")
	}

	m, ok := final.(Model)
	if !ok {
		return "", nil
	}
	return m.Chosen, nil
}
