package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ANSI color codes for console level tags.
const (
	ansiReset  = "\x1b[0m"
	ansiCyan   = "\x1b[36m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
)

// consoleHandler writes color-coded single-line entries to a terminal.
type consoleHandler struct {
	w            io.Writer
	level        slog.Leveler
	preformatted []slog.Attr
	mu           *sync.Mutex
}

// newConsoleHandler creates a console handler writing to w at the given level.
func newConsoleHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return &consoleHandler{
		w:     w,
		level: level,
		mu:    &sync.Mutex{},
	}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, rec slog.Record) error {
	line := colorizeLevel(formatLine(rec, h.preformatted), rec.Level)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line+"\n")
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.preformatted)+len(attrs))
	merged = append(merged, h.preformatted...)
	merged = append(merged, attrs...)
	return &consoleHandler{w: h.w, level: h.level, preformatted: merged, mu: h.mu}
}

// WithGroup is accepted but flattened: the line format has no nesting.
func (h *consoleHandler) WithGroup(string) slog.Handler {
	return h
}

// colorizeLevel wraps the [<LEVEL>] tag of a formatted line in ANSI colors.
func colorizeLevel(line string, level slog.Level) string {
	var color string
	switch {
	case level >= slog.LevelError:
		color = ansiRed
	case level >= slog.LevelWarn:
		color = ansiYellow
	case level >= slog.LevelInfo:
		color = ansiGreen
	default:
		color = ansiCyan
	}

	tag := "[" + level.String() + "]"
	return strings.Replace(line, tag, color+tag+ansiReset, 1)
}
