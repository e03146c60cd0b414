// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/rappelledev/internal/adapters/detector"
	"go.trai.ch/rappelledev/internal/core/ports"
	"go.trai.ch/rappelledev/internal/ui/style"
)

// messager is implemented by zerr errors: it reports the error's own message without its cause.
type messager interface {
	Message() string
}

// metadataer is implemented by zerr errors carrying key/value metadata.
type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
// All records are written to stderr unless SetOutput is called.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
	mode   detector.OutputMode
	output io.Writer
}

// New creates a Logger writing to stderr in the mode detected for the current environment.
func New() ports.Logger {
	return NewWithOutput(os.Stderr, detector.DetectEnvironment())
}

// NewWithOutput creates a Logger writing to w in the given mode.
func NewWithOutput(w io.Writer, mode detector.OutputMode) *Logger {
	l := &Logger{}
	l.reset(w, mode)
	return l
}

// SetOutput updates the logger's output destination, preserving the mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset(w, l.mode)
}

// SetMode switches the rendering, preserving the output destination.
// ModeAuto re-runs detection.
func (l *Logger) SetMode(mode detector.OutputMode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset(l.output, mode)
}

func (l *Logger) reset(w io.Writer, mode detector.OutputMode) {
	if w == nil {
		w = os.Stderr
	}
	if mode == detector.ModeAuto {
		mode = detector.DetectEnvironment()
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	switch mode {
	case detector.ModeJSON:
		handler = slog.NewJSONHandler(w, opts)
	case detector.ModePretty:
		handler = NewPrettyHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	l.output = w
	l.mode = mode
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with its chain of causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.mode == detector.ModeJSON {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	l.logger.Error(FormatError(err))
}

// FormatError renders err as a main message followed by its causes.
// zerr errors contribute their own message and metadata; any other error
// contributes its full Error() text and ends the traversal.
func FormatError(err error) string {
	var lines []string

	depth := 0
	for current := err; current != nil; depth++ {
		msg, meta := current.Error(), ""
		next := error(nil)

		if m, ok := current.(messager); ok {
			msg = m.Message()
			next = errors.Unwrap(current)
		}
		if md, ok := current.(metadataer); ok {
			meta = formatMetadata(md.Metadata())
		}

		msgLines := strings.Split(msg, "\n")
		if depth == 0 {
			lines = append(lines, "Error: "+msgLines[0]+meta)
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
		} else {
			if depth == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    "+style.Arrow+" "+msgLines[0]+meta)
			for _, line := range msgLines[1:] {
				lines = append(lines, "      "+line)
			}
		}

		current = next
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
