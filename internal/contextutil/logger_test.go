package contextutil

import (
	"context"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Error("LoggerFromContext() without logger should return slog.Default()")
	}

	custom := slog.Default().With("job_id", "j-1")
	ctx := WithLogger(context.Background(), custom)
	if got := LoggerFromContext(ctx); got != custom {
		t.Error("LoggerFromContext() should return the logger stored by WithLogger")
	}
}

func TestLoggerOr(t *testing.T) {
	fallback := slog.Default().With("component", "test")
	if got := LoggerOr(context.Background(), fallback); got != fallback {
		t.Error("LoggerOr() without context logger should return the fallback")
	}
	if got := LoggerOr(context.Background(), nil); got != slog.Default() {
		t.Error("LoggerOr() with nil fallback should return slog.Default()")
	}

	scoped := slog.Default().With("book_id", "b-1")
	if got := LoggerOr(WithLogger(context.Background(), scoped), fallback); got != scoped {
		t.Error("LoggerOr() should prefer the context logger")
	}
}
