// Package commands implements the CLI commands for the rappelledev launcher.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/rappelledev/internal/adapters/tui"
	"go.trai.ch/rappelledev/internal/app"
	"go.trai.ch/rappelledev/internal/build"
	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/rappelledev/internal/engine/registry"
)

// CLI represents the command line interface for rappelledev.
type CLI struct {
	app     Application
	picker  Picker
	rootCmd *cobra.Command
	flags   globalFlags
}

// Application represents the application logic interface.
type Application interface {
	Dispatch(ctx context.Context, req app.Request) error
	Describe(ctx context.Context, overrides domain.Overrides) (app.ConfigView, error)
	Commands() []registry.Command
	SetLogFormat(format string)
}

// Picker lets the user choose a command interactively.
// It returns "" when the user quits without choosing.
type Picker interface {
	Pick(ctx context.Context, items []tui.Item) (string, error)
}

// Option configures a CLI.
type Option func(*CLI)

// WithPicker replaces the terminal picker used by the pick command.
func WithPicker(p Picker) Option {
	return func(c *CLI) {
		c.picker = p
	}
}

type globalFlags struct {
	directory        string
	dockerComposeCmd string
	env              string
	dryRun           bool
	logFormat        string
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	c := &CLI{app: a, picker: tui.NewPicker(os.Stdin, os.Stderr)}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd := &cobra.Command{
		Use:           "rappelledev [command] [args...]",
		Short:         "Launch the rappelle development environment",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		// Global flags are consumed while walking to the subcommand, so
		// passthrough commands receive their arguments untouched.
		TraverseChildren: true,
		Args:             cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			c.app.SetLogFormat(c.flags.logFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return c.dispatch(cmd.Context(), args[0], args[1:])
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.flags.directory, "directory", "D", "", "Project checkout (default ~/rappelledev)")
	pf.StringVar(&c.flags.dockerComposeCmd, "docker-compose-cmd", "",
		`Orchestration command, as a JSON array ('["docker","compose"]') or space-separated tokens`)
	pf.StringVarP(&c.flags.env, "env", "e", "", "Target environment: prod or dev (default prod)")
	pf.BoolVar(&c.flags.dryRun, "dry-run", false, "Print orchestrator invocations instead of running them")
	pf.StringVar(&c.flags.logFormat, "log-format", "auto", "Log format: auto, pretty, text or json")

	c.rootCmd = rootCmd

	for _, cmd := range a.Commands() {
		rootCmd.AddCommand(c.newLauncherCmd(cmd))
	}
	rootCmd.AddCommand(c.newPickCmd())
	rootCmd.AddCommand(c.newPrintConfigCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) overrides() (domain.Overrides, error) {
	cmd, err := domain.ParseComposeCommand(c.flags.dockerComposeCmd)
	if err != nil {
		return domain.Overrides{}, err
	}
	return domain.Overrides{
		Directory:        c.flags.directory,
		Env:              c.flags.env,
		DockerComposeCmd: cmd,
	}, nil
}

func (c *CLI) dispatch(ctx context.Context, name string, args []string) error {
	overrides, err := c.overrides()
	if err != nil {
		return err
	}
	return c.app.Dispatch(ctx, app.Request{
		Command:   name,
		Args:      args,
		Overrides: overrides,
		DryRun:    c.flags.dryRun,
	})
}
