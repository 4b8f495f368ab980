package logger

import (
	"context"
	"errors"
	"log/slog"
)

// multiHandler fans a record out to every destination that accepts its level.
type multiHandler struct {
	targets []slog.Handler
}

func newMultiHandler(targets ...slog.Handler) slog.Handler {
	return &multiHandler{targets: targets}
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range m.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every enabled target. A failing destination
// does not block the others; errors are joined.
func (m *multiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, t := range m.targets {
		if t.Enabled(ctx, rec.Level) {
			if err := t.Handle(ctx, rec.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	targets := make([]slog.Handler, len(m.targets))
	for i, t := range m.targets {
		targets[i] = t.WithAttrs(attrs)
	}
	return newMultiHandler(targets...)
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	targets := make([]slog.Handler, len(m.targets))
	for i, t := range m.targets {
		targets[i] = t.WithGroup(name)
	}
	return newMultiHandler(targets...)
}
