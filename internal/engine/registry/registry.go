// Package registry holds the closed table of launcher commands.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/rappelledev/internal/engine/runner"
	"go.trai.ch/zerr"
)

// Runner is the part of *runner.Runner that commands use.
type Runner interface {
	RunOrchestrated(ctx context.Context, args []string, opts ...runner.RunOption) (domain.ProcessResult, error)
	CaptureOrchestrated(ctx context.Context, args []string, opts ...runner.RunOption) ([]byte, error)
}

// Context carries what a command needs to execute.
type Context struct {
	Runner Runner
	Args   []string
	Stdout io.Writer
}

// ArgSchema describes the trailing arguments a command accepts.
type ArgSchema struct {
	// Use is the usage suffix shown after the command name.
	Use string
	// Min is the minimum number of arguments.
	Min int
	// Max is the maximum number of arguments; negative means unbounded.
	Max int
	// Passthrough stops flag parsing at the first argument so orchestrator
	// flags are forwarded verbatim.
	Passthrough bool
}

// NoArgs accepts no trailing arguments.
var NoArgs = ArgSchema{}

// Validate checks the argument count against the schema.
func (s ArgSchema) Validate(args []string) error {
	n := len(args)
	switch {
	case n < s.Min:
		return countError(fmt.Sprintf("requires at least %d arg(s), received %d", s.Min, n), n)
	case s.Max >= 0 && n > s.Max:
		return countError(fmt.Sprintf("accepts at most %d arg(s), received %d", s.Max, n), n)
	}
	return nil
}

func countError(msg string, n int) error {
	return errors.Join(domain.ErrInvalidArguments, zerr.With(zerr.New(msg), "received", n))
}

// Command is one named launcher command.
type Command struct {
	Name    string
	Short   string
	Args    ArgSchema
	Execute func(ctx context.Context, c *Context) error
}

// Registry maps command names to commands, preserving registration order.
type Registry struct {
	commands map[string]Command
	order    []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd. It panics if the name is already registered.
func (r *Registry) Register(cmd Command) {
	if _, exists := r.commands[cmd.Name]; exists {
		panic(fmt.Sprintf("command %s already registered", cmd.Name))
	}
	r.commands[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
}

// Lookup returns the command registered under name and whether it exists.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands returns every registered command in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}
