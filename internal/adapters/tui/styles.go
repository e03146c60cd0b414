package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/rappelledev/internal/ui/style"
)

var (
	colorWhite = lipgloss.Color("#FFFFFF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(colorWhite)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	descStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true).
			MarginTop(1)
)
