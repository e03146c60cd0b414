package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rappelledev/internal/adapters/logger"
)

func newPrettyLogger(t *testing.T, buf *bytes.Buffer) (*slog.Logger, *logger.PrettyHandler) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler), handler
}

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			lg, _ := newPrettyLogger(t, buf)

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		attrs      []any
		goldenName string
	}{
		{name: "single attribute", msg: "single attr message", attrs: []any{"key", "value"}, goldenName: "handler_attrs_single"},
		{name: "multiple attributes", msg: "multi attr message", attrs: []any{"a", "1", "b", 2}, goldenName: "handler_attrs_multi"},
		{
			name:       "value with spaces is quoted",
			msg:        "spaced attr message",
			attrs:      []any{"dir", "/home/dev/rappelledev/docker compose"},
			goldenName: "handler_attrs_quoted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			lg, _ := newPrettyLogger(t, buf)

			lg.Info(tt.msg, tt.attrs...)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Run("nested groups", func(t *testing.T) {
		buf := &bytes.Buffer{}
		_, handler := newPrettyLogger(t, buf)

		lg := slog.New(handler.WithGroup("a").WithGroup("b"))
		lg.Info("nested group message", "key", "val")

		g := goldie.New(t)
		g.Assert(t, "handler_group_nested", buf.Bytes())
	})

	t.Run("empty name returns the same handler", func(t *testing.T) {
		buf := &bytes.Buffer{}
		_, handler := newPrettyLogger(t, buf)

		same := handler.WithGroup("")
		assert.Same(t, handler, same)

		slog.New(same).Info("empty group test", "key", "val")

		g := goldie.New(t)
		g.Assert(t, "handler_group_empty", buf.Bytes())
	})

	t.Run("group with handler and record attrs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		_, handler := newPrettyLogger(t, buf)

		lg := slog.New(handler.WithGroup("req").WithAttrs([]slog.Attr{slog.String("id", "123")}))
		lg.Info("grouped message", "extra", "data")

		g := goldie.New(t)
		g.Assert(t, "handler_combined_group", buf.Bytes())
	})
}

func TestPrettyHandler_WithAttrs_DoesNotAlias(t *testing.T) {
	buf := &bytes.Buffer{}
	_, handler := newPrettyLogger(t, buf)

	base := handler.WithAttrs([]slog.Attr{slog.String("a", "1")})
	_ = base.WithAttrs([]slog.Attr{slog.String("b", "2")})

	slog.New(base).Info("msg")
	assert.Equal(t, "msg a=1\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		recordLevel  slog.Level
		wantEnabled  bool
	}{
		{name: "debug below info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelDebug, wantEnabled: false},
		{name: "info at info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelInfo, wantEnabled: true},
		{name: "error above info", handlerLevel: slog.LevelInfo, recordLevel: slog.LevelError, wantEnabled: true},
		{name: "warn at error", handlerLevel: slog.LevelError, recordLevel: slog.LevelWarn, wantEnabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: tt.handlerLevel})
			assert.Equal(t, tt.wantEnabled, handler.Enabled(t.Context(), tt.recordLevel))
		})
	}
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	require.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}

func TestPrettyHandler_Handle_ReturnsError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	handler := logger.NewPrettyHandler(&brokenWriter{}, nil)
	require.NotPanics(t, func() {
		slog.New(handler).Info("this will fail to write")
	})
}

type brokenWriter struct{}

func (bw *brokenWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}
