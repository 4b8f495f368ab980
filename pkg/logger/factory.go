package logger

import (
	"io"
	"log/slog"
	"os"
)

// options holds logger construction settings.
type options struct {
	console    io.Writer
	directory  string
	level      slog.Leveler
	extractors []ContextExtractor
}

// Option configures the logger factory.
type Option func(*options)

// WithLevel sets the minimum level for all destinations.
// Defaults to slog.LevelInfo.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.level = level
		}
	}
}

// WithConsole sets the console destination.
// Defaults to os.Stdout. Pass io.Discard to disable console output.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.console = w
		}
	}
}

// WithDirectory enables daily-rotated file logging in dir.
// Entries below ERROR go to stdout-YYYY-MM-DD.log, ERROR and above to
// stderr-YYYY-MM-DD.log. File output is disabled when no directory is set.
func WithDirectory(dir string) Option {
	return func(o *options) {
		o.directory = dir
	}
}

// WithFileConfig enables file logging from a decoded config block.
// No-op when the directory is empty.
func WithFileConfig(cfg FileConfig) Option {
	return WithDirectory(cfg.Directory)
}

// WithExtractors adds context extractors applied to every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// New creates a logger writing color-coded lines to the console and, when a
// directory is configured, plain-text lines to daily-rotated files.
func New(opts ...Option) *slog.Logger {
	o := &options{
		console: os.Stdout,
		level:   slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlers := []slog.Handler{newConsoleHandler(o.console, o.level)}
	if o.directory != "" {
		handlers = append(handlers,
			newFileHandler(o.directory, "stdout", o.level.Level(), slog.LevelError-1),
			newFileHandler(o.directory, "stderr", slog.LevelError, slog.Level(1<<30)),
		)
	}

	var h slog.Handler
	if len(handlers) == 1 {
		h = handlers[0]
	} else {
		h = newMultiHandler(handlers...)
	}

	return slog.New(NewExtractorHandler(h, o.extractors...))
}
