package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Conn is the slice of *pgxpool.Conn the session needs. Narrowed to an
// interface so sessions can be built over a stub instead of a live pool.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Release()
}

// Session is a request-scoped database connection. Each in-flight request
// owns its session exclusively for its whole lifetime; sessions are never
// shared, so one request's rollback cannot touch another's transaction.
//
// The owner must call Release exactly once when the request finishes;
// Release is idempotent, so deferred cleanup on error paths is safe.
type Session struct {
	requestID    string
	conn         Conn
	logger       *slog.Logger
	queryTimeout time.Duration

	tx           pgx.Tx
	released     atomic.Bool
	rollbackOnly atomic.Bool
}

// NewSession wraps an already-acquired connection in a Session.
// Manager.Acquire is the normal path; this constructor exists for tests and
// custom pool setups.
func NewSession(requestID string, conn Conn) *Session {
	return &Session{
		requestID: requestID,
		conn:      conn,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// RequestID returns the identifier of the request owning this session.
func (s *Session) RequestID() string {
	return s.requestID
}

// InTx reports whether a transaction is currently open.
func (s *Session) InTx() bool {
	return s.tx != nil
}

// Begin opens a transaction on the session's connection.
func (s *Session) Begin(ctx context.Context) error {
	if s.released.Load() {
		return ErrSessionReleased
	}
	if s.tx != nil {
		return ErrTxActive
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return errors.Join(ErrAcquireConnection, err)
	}
	s.tx = tx
	return nil
}

// Commit commits the open transaction.
func (s *Session) Commit(ctx context.Context) error {
	if s.released.Load() {
		return ErrSessionReleased
	}
	if s.tx == nil {
		return ErrNoTransaction
	}

	err := s.tx.Commit(ctx)
	s.tx = nil
	return err
}

// Rollback aborts the open transaction.
func (s *Session) Rollback(ctx context.Context) error {
	if s.released.Load() {
		return ErrSessionReleased
	}
	if s.tx == nil {
		return ErrNoTransaction
	}

	err := s.tx.Rollback(ctx)
	s.tx = nil
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

// MarkRollback asks the transaction middleware to roll back instead of
// committing, even when the handler returns no error.
func (s *Session) MarkRollback() {
	s.rollbackOnly.Store(true)
}

// RollbackRequested reports whether MarkRollback was called.
func (s *Session) RollbackRequested() bool {
	return s.rollbackOnly.Load()
}

// Release returns the connection to the pool. The first call wins; repeated
// calls are no-ops, so both the middleware's deferred guard and explicit
// cleanup can call it without double-releasing. A transaction still open at
// release time is rolled back, never committed.
func (s *Session) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}

	if s.tx != nil {
		if err := s.tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Warn("rollback on release failed",
				slog.String("request_id", s.requestID),
				slog.Any("error", err),
			)
		}
		s.tx = nil
	}

	s.conn.Release()
}

// Ping verifies the connection is alive before use.
// Failures are logged and returned, never swallowed.
func (s *Session) Ping(ctx context.Context) error {
	if s.released.Load() {
		return ErrSessionReleased
	}
	if err := s.conn.Ping(ctx); err != nil {
		s.logger.Error("connection liveness check failed",
			slog.String("request_id", s.requestID),
			slog.Any("error", err),
		)
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// Exec runs a statement through the open transaction, or directly on the
// connection when no transaction has been started.
func (s *Session) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if s.released.Load() {
		return pgconn.CommandTag{}, &QueryError{SQL: sql, Args: args, Err: ErrSessionReleased}
	}

	ctx, cancel := s.deadline(ctx)
	defer cancel()

	tag, err := s.target().Exec(ctx, sql, args...)
	if err != nil {
		return tag, &QueryError{SQL: sql, Args: args, Err: err}
	}
	return tag, nil
}

// Query runs a query through the open transaction, or directly on the
// connection when no transaction has been started.
func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if s.released.Load() {
		return nil, &QueryError{SQL: sql, Args: args, Err: ErrSessionReleased}
	}

	// The timeout must outlive this call: the rows stream stays bound to
	// the query context until the caller closes it.
	if s.queryTimeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
		rows, err := s.target().Query(ctx, sql, args...)
		if err != nil {
			cancel()
			return nil, &QueryError{SQL: sql, Args: args, Err: err}
		}
		return &cancelOnCloseRows{Rows: rows, cancel: cancel}, nil
	}

	rows, err := s.target().Query(ctx, sql, args...)
	if err != nil {
		return nil, &QueryError{SQL: sql, Args: args, Err: err}
	}
	return rows, nil
}

// QueryRow runs a single-row query. Errors surface on Scan, per pgx
// convention.
func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.released.Load() {
		return errRow{&QueryError{SQL: sql, Args: args, Err: ErrSessionReleased}}
	}

	// The timeout must outlive this call: the row is consumed by the
	// caller's Scan, which releases it.
	if s.queryTimeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
		return scanThenCancel{row: s.target().QueryRow(ctx, sql, args...), cancel: cancel}
	}
	return s.target().QueryRow(ctx, sql, args...)
}

// target picks the transaction when one is open, the bare connection
// otherwise. Queries before Begin (or between transactions) still work,
// tolerating out-of-order calls.
func (s *Session) target() queryTarget {
	if s.tx != nil {
		return s.tx
	}
	return s.conn
}

// deadline applies the configured per-query timeout, if any.
func (s *Session) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {}
}

// queryTarget is the execution surface shared by pgx.Tx and pooled conns.
type queryTarget interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// errRow is a pgx.Row that fails on Scan.
type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

// scanThenCancel keeps the query timeout alive until the row is scanned.
type scanThenCancel struct {
	row    pgx.Row
	cancel context.CancelFunc
}

func (r scanThenCancel) Scan(dest ...any) error {
	defer r.cancel()
	return r.row.Scan(dest...)
}

// cancelOnCloseRows keeps the query timeout alive until the rows are closed.
// pgx binds the result stream to the query context, so cancelling before the
// caller finishes reading would abort the stream mid-flight.
type cancelOnCloseRows struct {
	pgx.Rows
	cancel context.CancelFunc
}

func (r *cancelOnCloseRows) Close() {
	r.Rows.Close()
	r.cancel()
}
