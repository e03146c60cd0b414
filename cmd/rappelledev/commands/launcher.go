package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rappelledev/internal/engine/registry"
)

func (c *CLI) newLauncherCmd(def registry.Command) *cobra.Command {
	use := def.Name
	if def.Args.Use != "" {
		use += " " + def.Args.Use
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: def.Short,
		Args: func(_ *cobra.Command, args []string) error {
			return def.Args.Validate(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.dispatch(cmd.Context(), def.Name, args)
		},
	}

	if def.Args.Passthrough {
		cmd.DisableFlagParsing = true
		cmd.Long = def.Short + ".\n\nEvery argument is forwarded verbatim; global flags must precede the command name."
	}
	return cmd
}
