package ports

import "context"

// Tracer is the entry point for creating spans.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Tracer interface {
	// Start creates a new span as a child of any span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span and marks it failed.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// NopTracer is a Tracer whose spans record nothing.
type NopTracer struct{}

// Start returns ctx unchanged and a span that records nothing.
func (NopTracer) Start(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, NopSpan{}
}

// NopSpan is a Span that records nothing.
type NopSpan struct{}

// End does nothing.
func (NopSpan) End() {}

// RecordError does nothing.
func (NopSpan) RecordError(error) {}

// SetAttribute does nothing.
func (NopSpan) SetAttribute(string, any) {}
