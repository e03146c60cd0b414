// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/rappelledev/internal/core/domain"
)

// Executor defines the interface for launching external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run launches the invocation with the standard streams of the current
	// process and blocks until it terminates.
	//
	// A process that exits non-zero is reported through the returned
	// ProcessResult with a nil error. An error is returned only when the
	// process could not be started; it is a *domain.LaunchError.
	Run(ctx context.Context, inv domain.Invocation) (domain.ProcessResult, error)

	// Output is like Run but captures the standard output of the process.
	Output(ctx context.Context, inv domain.Invocation) ([]byte, domain.ProcessResult, error)
}
