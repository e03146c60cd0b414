// Package main is the entry point for the rappelledev launcher.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/grindlemire/graft"
	"go.trai.ch/rappelledev/cmd/rappelledev/commands"
	"go.trai.ch/rappelledev/internal/app"
	"go.trai.ch/rappelledev/internal/core/domain"
	_ "go.trai.ch/rappelledev/internal/wiring"
)

// interruptSignals stop further launches. The child receives a terminal interrupt
// too; SIGTERM is left untrapped so it still ends the launcher.
var interruptSignals = []os.Signal{os.Interrupt}

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// The child shares our process group and receives terminal signals itself;
	// we only stop launching further processes.
	ctx, cancel := signal.NotifyContext(ctx, interruptSignals...)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		return exitCode(err, components)
	}
	return 0
}

// exitCode logs err and forwards the orchestrator's status; every other failure maps to 1.
func exitCode(err error, components *app.Components) int {
	components.Logger.Error(err)

	var execErr *domain.CommandExecutionError
	if errors.As(err, &execErr) && execErr.ExitCode > 0 {
		return execErr.ExitCode
	}
	return 1
}
