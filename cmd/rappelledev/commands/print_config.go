package commands

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *CLI) newPrintConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print-config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides, err := c.overrides()
			if err != nil {
				return err
			}

			view, err := c.app.Describe(cmd.Context(), overrides)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(view); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
