package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.name))
		})
	}
}

func TestColorTextHandler(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	SetOutput(&buf)
	Init("info")
	t.Cleanup(func() { Init("info") })

	Debug("hidden")
	Info("Loaded templates", "count", 3, "score", 0.5, "path", "templates")
	assert.Equal(t, "INFO Loaded templates count=3 score=0.5000 path=templates\n", buf.String())

	buf.Reset()
	Init("debug")
	Debug("Glyph scored", "accepted", true)
	assert.Equal(t, "DEBUG Glyph scored accepted=true\n", buf.String())

	buf.Reset()
	Init("error")
	Warn("suppressed")
	Error("failed", "error", "boom")
	assert.Equal(t, "ERROR failed error=boom\n", buf.String())
}

func TestColorTextHandler_WithAttrs(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	Init("info")

	logger := slog.New(NewColorTextHandler(&buf)).With("request", 7)
	logger.Info("done", "ok", true)
	assert.Equal(t, "INFO done request=7 ok=true\n", buf.String())
}
