// Package db provides PostgreSQL access with request-scoped sessions.
//
// This package wraps [github.com/jackc/pgx/v5/pgxpool] with a Manager that
// checks one physical connection out of the pool per request. The resulting
// Session carries explicit transaction control (Begin/Commit/Rollback), a
// liveness check, and statement execution that routes through the open
// transaction. Sessions are exclusive to their request: concurrent requests
// can never interleave transaction state.
//
// # Lifecycle
//
// The transaction middleware drives the session through its states:
//
//	Acquire -> Begin -> (queries) -> Commit or Rollback -> Release
//
// Release is idempotent and must be called exactly once per request; a
// deferred Release on the error path plus an explicit one on success is safe.
// Releasing with an open transaction rolls it back.
//
// # Connecting
//
//	pool, err := db.Connect(ctx, db.Config{ConnectionString: cfg.App.Database.URL()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	manager := db.NewManager(pool, db.WithLogger(log), db.WithQueryTimeout(5*time.Second))
//
// Connect retries with growing backoff and pings before returning, so
// credential problems surface at startup.
//
// # Error Handling
//
// Sentinel errors split into connection-class (ErrMissingRequestID,
// ErrAcquireConnection) and state-class (ErrSessionReleased, ErrTxActive,
// ErrNoTransaction). Statement failures come back as *QueryError carrying
// the SQL text and bound parameters; they are never retried automatically.
package db
