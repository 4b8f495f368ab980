package middlewares

import (
	"context"

	"github.com/restbase/restbase/internal"
	"github.com/restbase/restbase/pkg/db"
)

// sessionKey is the context key for storing the request's database session.
type sessionKey struct{}

// SessionSource hands out request-scoped database sessions.
// *db.Manager implements it.
type SessionSource interface {
	Acquire(ctx context.Context, requestID string) (*db.Session, error)
}

// Transaction returns middleware that gives each request its own database
// session with an open transaction.
//
// On entry it acquires a connection keyed by the request ID (set by the
// RequestID middleware) and begins a transaction. The session is available
// to handlers via GetSession. On a clean handler return the transaction
// commits, unless the handler called MarkRollback on the session. A handler
// error or a panic rolls the transaction back. The connection is returned to
// the pool in every case, exactly once.
//
// If no connection can be acquired the handler never runs and the acquire
// error goes straight to the error handler.
func Transaction(source SessionSource) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			sess, err := source.Acquire(c.Context(), GetRequestID(c))
			if err != nil {
				c.LogError("session acquire failed", "error", err)
				return err
			}
			// Release rolls back any transaction still open, so the panic
			// path needs no extra handling here.
			defer sess.Release()

			if err := sess.Begin(c.Context()); err != nil {
				return err
			}

			c.Set(sessionKey{}, sess)

			if err := next(c); err != nil {
				if rbErr := sess.Rollback(c.Context()); rbErr != nil {
					c.LogError("rollback failed", "error", rbErr)
				}
				return err
			}

			if sess.RollbackRequested() {
				return sess.Rollback(c.Context())
			}
			return sess.Commit(c.Context())
		}
	}
}

// GetSession extracts the request's database session from the context.
// Returns nil if the Transaction middleware is not installed.
func GetSession(c internal.Context) *db.Session {
	if s, ok := c.Get(sessionKey{}).(*db.Session); ok {
		return s
	}
	return nil
}
