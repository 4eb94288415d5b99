package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEventContext(t *testing.T) {
	AddToEvent(context.Background(), slog.String("ignored", "x"))

	ctx, event := NewEventContext(context.Background())
	AddToEvent(ctx, slog.String("locale", "en"), slog.String("locale_source", "cookie"))

	if EventFromContext(ctx) != event {
		t.Fatal("expected event from context")
	}
	if got := len(event.Attrs()); got != 2 {
		t.Errorf("expected 2 attrs, got %d", got)
	}
}
