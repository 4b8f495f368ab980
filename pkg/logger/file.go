package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileConfig holds file logging settings, typically decoded from the
// "log" block of the application config file.
type FileConfig struct {
	// Directory receiving the daily log files. Created if missing.
	Directory string `json:"directory"`
}

// fileSink owns a per-day log file named <prefix>-YYYY-MM-DD.log and rotates
// it when the local date changes. Shared by all handler clones produced via
// WithAttrs so a day's output lands in a single file descriptor.
type fileSink struct {
	dir    string
	prefix string

	mu   sync.Mutex
	day  string
	file *os.File
}

// write appends one line to the file matching the entry's date.
func (s *fileSink) write(ts time.Time, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := ts.Format("2006-01-02")
	if s.file == nil || day != s.day {
		if s.file != nil {
			_ = s.file.Close()
			s.file = nil
		}
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("logger: create log directory %s: %w", s.dir, err)
		}
		name := filepath.Join(s.dir, fmt.Sprintf("%s-%s.log", s.prefix, day))
		f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("logger: open log file %s: %w", name, err)
		}
		s.day = day
		s.file = f
	}

	_, err := fmt.Fprintln(s.file, line)
	return err
}

// fileHandler formats records as plain-text lines (no ANSI codes) and hands
// them to a fileSink. The [min, max] level window lets one logger split
// INFO-and-below from ERROR-and-above into separate stdout/stderr files.
type fileHandler struct {
	sink         *fileSink
	min, max     slog.Level
	preformatted []slog.Attr
}

// newFileHandler creates a handler for records with min <= level <= max.
func newFileHandler(dir, prefix string, min, max slog.Level) slog.Handler {
	return &fileHandler{
		sink: &fileSink{dir: dir, prefix: prefix},
		min:  min,
		max:  max,
	}
}

func (h *fileHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min && level <= h.max
}

func (h *fileHandler) Handle(_ context.Context, rec slog.Record) error {
	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return h.sink.write(ts, formatLine(rec, h.preformatted))
}

func (h *fileHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.preformatted)+len(attrs))
	merged = append(merged, h.preformatted...)
	merged = append(merged, attrs...)
	return &fileHandler{sink: h.sink, min: h.min, max: h.max, preformatted: merged}
}

// WithGroup is accepted but flattened: the line format has no nesting.
func (h *fileHandler) WithGroup(string) slog.Handler {
	return h
}
