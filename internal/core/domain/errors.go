package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrConfiguration is returned when the effective configuration cannot be resolved,
	// either because a source is unreadable or because a resolved value is invalid.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrInvalidEnvironment is returned when an environment value is not one of the known environments.
	ErrInvalidEnvironment = zerr.New("invalid environment, expected 'dev' or 'prod'")

	// ErrConfigReadFailed is returned when the config file exists but cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file is not a valid JSON object.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidComposeCommand is returned when the orchestration command override cannot be parsed.
	ErrInvalidComposeCommand = zerr.New("invalid docker-compose command, expected a JSON array of strings")

	// ErrUnknownCommand is returned when a command name matches no registered command.
	ErrUnknownCommand = zerr.New("unknown command")

	// ErrInvalidArguments is returned when a command receives an argument count outside its schema.
	ErrInvalidArguments = zerr.New("invalid arguments")

	// ErrCommandExecution is matched by errors reporting a process that exited with a non-zero status.
	ErrCommandExecution = zerr.New("command exited with non-zero status")

	// ErrLaunch is matched by errors reporting a process that could not be started at all.
	ErrLaunch = zerr.New("failed to launch command")

	// ErrNotInteractive is returned when the command picker is started without a terminal.
	ErrNotInteractive = zerr.New("interactive terminal required")

	// ErrMissingHomeDir is returned when the user's home directory cannot be determined.
	ErrMissingHomeDir = zerr.New("failed to determine home directory")
)

// CommandExecutionError reports a process that started and exited with a non-zero status.
type CommandExecutionError struct {
	Tokens   []string
	Dir      string
	ExitCode int
}

func (e *CommandExecutionError) Error() string {
	return fmt.Sprintf("command %q exited with status %d (dir: %s)", strings.Join(e.Tokens, " "), e.ExitCode, e.Dir)
}

// Is reports whether target is ErrCommandExecution.
func (e *CommandExecutionError) Is(target error) bool {
	return target == ErrCommandExecution
}

// LaunchError reports a process that never started, e.g. a missing binary or working directory.
type LaunchError struct {
	Tokens []string
	Dir    string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %q (dir: %s): %v", strings.Join(e.Tokens, " "), e.Dir, e.Err)
}

// Unwrap returns the underlying start failure.
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLaunch.
func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunch
}
