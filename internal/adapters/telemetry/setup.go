package telemetry

import (
	"os"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TraceFileEnv names the variable that enables span export.
const TraceFileEnv = "RAPPELLEDEV_TRACE_FILE"

// InstallFromEnv registers a global TracerProvider exporting to the file named
// by TraceFileEnv. It reports whether a provider was installed; without the
// variable the global provider is left alone and spans are dropped.
func InstallFromEnv() bool {
	path := os.Getenv(TraceFileEnv)
	if path == "" {
		return false
	}

	// Spans are exported synchronously on End, so a short-lived CLI loses none.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(NewFileExporter(path)),
	)
	otel.SetTracerProvider(tp)
	return true
}
