package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rappelledev/internal/adapters/tui"
)

func (c *CLI) newPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a command to run from an interactive list",
		Long: "Choose a command to run from an interactive list.\n\n" +
			"Only commands that run without arguments are listed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			choice, err := c.picker.Pick(cmd.Context(), c.pickable())
			if err != nil || choice == "" {
				return err
			}
			return c.dispatch(cmd.Context(), choice, nil)
		},
	}
}

func (c *CLI) pickable() []tui.Item {
	var items []tui.Item
	for _, def := range c.app.Commands() {
		if def.Args.Min > 0 {
			continue
		}
		items = append(items, tui.Item{Name: def.Name, Short: def.Short})
	}
	return items
}
