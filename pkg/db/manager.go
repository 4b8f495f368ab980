package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Manager hands out request-scoped sessions from a shared connection pool.
// The pool is the only shared mutable resource: every request receives an
// isolated physical connection through Acquire and returns it via Release.
type Manager struct {
	pool         *pgxpool.Pool
	logger       *slog.Logger
	queryTimeout time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for session diagnostics.
// Defaults to a discard logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithQueryTimeout bounds every statement issued through sessions.
// Zero disables the per-query deadline.
func WithQueryTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.queryTimeout = d
		}
	}
}

// NewManager creates a Manager over an established pool.
func NewManager(pool *pgxpool.Pool, opts ...ManagerOption) *Manager {
	m := &Manager{
		pool:   pool,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire checks a connection out of the pool for the given request.
// Fails with ErrMissingRequestID when no identifier is supplied, or with
// ErrAcquireConnection when the pool cannot yield a connection.
func (m *Manager) Acquire(ctx context.Context, requestID string) (*Session, error) {
	if requestID == "" {
		return nil, ErrMissingRequestID
	}

	pc, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Join(ErrAcquireConnection, err)
	}

	return &Session{
		requestID:    requestID,
		conn:         pc,
		logger:       m.logger,
		queryTimeout: m.queryTimeout,
	}, nil
}

// Query runs a single statement on a pooled connection without a session.
// Covers out-of-order callers that need a one-off read outside the request
// transaction; the connection is borrowed and returned transparently.
func (m *Manager) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	// Same contract as Session.Query: the timeout holds until the caller
	// closes the rows, not until this call returns.
	if m.queryTimeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, m.queryTimeout)
		rows, err := m.pool.Query(ctx, sql, args...)
		if err != nil {
			cancel()
			return nil, &QueryError{SQL: sql, Args: args, Err: err}
		}
		return &cancelOnCloseRows{Rows: rows, cancel: cancel}, nil
	}

	rows, err := m.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, &QueryError{SQL: sql, Args: args, Err: err}
	}
	return rows, nil
}

// Exec runs a single statement on a pooled connection without a session.
func (m *Manager) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ctx, cancel := m.deadline(ctx)
	defer cancel()

	tag, err := m.pool.Exec(ctx, sql, args...)
	if err != nil {
		return tag, &QueryError{SQL: sql, Args: args, Err: err}
	}
	return tag, nil
}

// QueryRow runs a single-row statement on a pooled connection.
func (m *Manager) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	// Pool handles checkout/return; per-query deadline is applied by the
	// caller's context when needed, since Scan happens after return.
	return m.pool.QueryRow(ctx, sql, args...)
}

// WithSession acquires a session, runs fn inside a transaction, and releases
// the connection. Commits on a clean return, rolls back when fn errors or
// panics. Useful for background work that wants request-style semantics.
func (m *Manager) WithSession(ctx context.Context, requestID string, fn func(s *Session) error) error {
	s, err := m.Acquire(ctx, requestID)
	if err != nil {
		return err
	}
	defer s.Release()

	if err := s.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = s.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(s); err != nil {
		_ = s.Rollback(ctx)
		return err
	}

	return s.Commit(ctx)
}

// deadline applies the configured per-query timeout, if any.
func (m *Manager) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.queryTimeout > 0 {
		return context.WithTimeout(ctx, m.queryTimeout)
	}
	return ctx, func() {}
}
