// Package shell provides the process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/rappelledev/internal/core/ports"
)

// Executor implements ports.Executor using os/exec.
// Child processes inherit the launcher's environment and, unless overridden,
// its standard streams.
type Executor struct {
	logger ports.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures an Executor.
type Option func(*Executor)

// WithStdio replaces the streams handed to child processes.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run starts the invocation and waits for it to finish.
// A non-zero exit status is reported through the result, not as an error.
func (e *Executor) Run(ctx context.Context, inv domain.Invocation) (domain.ProcessResult, error) {
	cmd, err := e.command(ctx, inv)
	if err != nil {
		return domain.ProcessResult{}, err
	}
	cmd.Stdout = e.stdout

	return e.wait(cmd, inv)
}

// Output runs the invocation and returns everything it wrote to stdout.
func (e *Executor) Output(ctx context.Context, inv domain.Invocation) ([]byte, domain.ProcessResult, error) {
	cmd, err := e.command(ctx, inv)
	if err != nil {
		return nil, domain.ProcessResult{}, err
	}

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	res, err := e.wait(cmd, inv)
	if err != nil {
		return nil, res, err
	}
	return stdout.Bytes(), res, nil
}

func (e *Executor) command(ctx context.Context, inv domain.Invocation) (*exec.Cmd, error) {
	if len(inv.Tokens) == 0 {
		return nil, launchError(inv, exec.ErrNotFound)
	}
	// The context only gates the launch: once started, the child owns the
	// terminal and receives interrupts from it directly.
	if err := ctx.Err(); err != nil {
		return nil, launchError(inv, err)
	}

	cmd := exec.Command(inv.Tokens[0], inv.Tokens[1:]...) //nolint:gosec // tokens come from the user's configuration
	cmd.Dir = inv.Dir
	cmd.Stdin = e.stdin
	cmd.Stderr = e.stderr
	return cmd, nil
}

func (e *Executor) wait(cmd *exec.Cmd, inv domain.Invocation) (domain.ProcessResult, error) {
	err := cmd.Run()
	if err == nil {
		return domain.ProcessResult{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return domain.ProcessResult{}, launchError(inv, err)
	}

	code := exitErr.ExitCode()
	if code < 0 {
		// Killed by a signal: there is no status to forward.
		e.logger.Warn(strings.Join(inv.Tokens, " ") + " was terminated: " + exitErr.String())
		code = 1
	}
	return domain.ProcessResult{ExitCode: code}, nil
}

func launchError(inv domain.Invocation, err error) *domain.LaunchError {
	return &domain.LaunchError{
		Tokens: slices.Clone(inv.Tokens),
		Dir:    inv.Dir,
		Err:    err,
	}
}
