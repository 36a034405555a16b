package contextutil

import (
	"context"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	custom := slog.New(slog.DiscardHandler)

	tests := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{"empty context", context.Background(), slog.Default()},
		{"with logger", WithLogger(context.Background(), custom), custom},
		{"wrong type", context.WithValue(context.Background(), loggerKey, "nope"), slog.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("LoggerFromContext() = %v, want %v", got, tt.want)
			}
		})
	}
}
