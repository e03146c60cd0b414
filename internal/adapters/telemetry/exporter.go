package telemetry

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
)

// FileExporter appends each exported span to a file as one JSON object per line.
// The file is opened per export, so nothing needs closing on exit.
type FileExporter struct {
	path string
	mu   sync.Mutex
}

// NewFileExporter creates an exporter appending to path.
func NewFileExporter(path string) *FileExporter {
	return &FileExporter{path: path}
}

type spanRecord struct {
	Name       string         `json:"name"`
	TraceID    string         `json:"trace_id"`
	SpanID     string         `json:"span_id"`
	ParentID   string         `json:"parent_id,omitempty"`
	Start      time.Time      `json:"start"`
	End        time.Time      `json:"end"`
	Status     string         `json:"status"`
	Error      string         `json:"error,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// ExportSpans writes spans to the file.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open trace file"), "path", e.path)
	}

	enc := json.NewEncoder(f)
	for _, span := range spans {
		if err := enc.Encode(newSpanRecord(span)); err != nil {
			_ = f.Close()
			return zerr.With(zerr.Wrap(err, "failed to write span"), "path", e.path)
		}
	}
	return f.Close()
}

// Shutdown does nothing; every export is already flushed.
func (e *FileExporter) Shutdown(context.Context) error {
	return nil
}

func newSpanRecord(span sdktrace.ReadOnlySpan) spanRecord {
	rec := spanRecord{
		Name:    span.Name(),
		TraceID: span.SpanContext().TraceID().String(),
		SpanID:  span.SpanContext().SpanID().String(),
		Start:   span.StartTime(),
		End:     span.EndTime(),
		Status:  span.Status().Code.String(),
		Error:   span.Status().Description,
	}
	if parent := span.Parent(); parent.HasSpanID() {
		rec.ParentID = parent.SpanID().String()
	}
	if attrs := span.Attributes(); len(attrs) > 0 {
		rec.Attributes = make(map[string]any, len(attrs))
		for _, kv := range attrs {
			rec.Attributes[string(kv.Key)] = kv.Value.AsInterface()
		}
	}
	return rec
}
