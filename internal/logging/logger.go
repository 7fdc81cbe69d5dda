// Package logging configures the process-wide slog logger.
//
// Output goes to stderr by default because the tool server owns stdout.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	mu    sync.Mutex
	level = new(slog.LevelVar)

	infoColor  = color.New(color.FgGreen).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
	debugColor = color.New(color.FgCyan).SprintFunc()
)

func init() {
	slog.SetDefault(slog.New(NewColorTextHandler(os.Stderr)))
}

// ColorTextHandler writes one line per record with a coloured level name
// followed by key=value attributes.
type ColorTextHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

// NewColorTextHandler creates a handler writing to w.
func NewColorTextHandler(w io.Writer) *ColorTextHandler {
	return &ColorTextHandler{mu: &sync.Mutex{}, w: w}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ColorTextHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= level.Level()
}

// Handle formats and writes the record.
func (h *ColorTextHandler) Handle(_ context.Context, r slog.Record) error {
	var levelText string
	switch r.Level {
	case slog.LevelDebug:
		levelText = debugColor("DEBUG")
	case slog.LevelInfo:
		levelText = infoColor("INFO")
	case slog.LevelWarn:
		levelText = warnColor("WARN")
	case slog.LevelError:
		levelText = errorColor("ERROR")
	default:
		levelText = r.Level.String()
	}

	var b strings.Builder
	b.WriteString(levelText)
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func writeAttr(b *strings.Builder, a slog.Attr) {
	if a.Key == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(formatAttrValue(a.Value))
}

// formatAttrValue formats a slog.Value as a string
func formatAttrValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return fmt.Sprintf("%d", v.Int64())
	case slog.KindFloat64:
		return fmt.Sprintf("%.4f", v.Float64())
	case slog.KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	default:
		return fmt.Sprintf("%v", v.Any())
	}
}

// WithAttrs returns a handler that prefixes every record with attrs.
func (h *ColorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &ColorTextHandler{mu: h.mu, w: h.w, attrs: merged}
}

// WithGroup is a no-op; groups are flattened.
func (h *ColorTextHandler) WithGroup(string) slog.Handler {
	return h
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init sets the minimum level by name ("debug", "info", "warn", "error").
func Init(levelName string) {
	level.Set(ParseLevel(levelName))
}

// SetOutput redirects the default logger to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	slog.SetDefault(slog.New(NewColorTextHandler(w)))
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
