package db

import (
	"errors"
	"fmt"
)

var (
	ErrFailedToParseConfig = errors.New("db: failed to parse database configuration")
	ErrFailedToConnect     = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed   = errors.New("db: healthcheck failed")

	// ErrMissingRequestID is returned by Acquire when no request identifier
	// is supplied. Connection-class error: the request never held a connection.
	ErrMissingRequestID = errors.New("db: request id required to acquire a connection")

	// ErrAcquireConnection is returned when the pool cannot yield a connection.
	ErrAcquireConnection = errors.New("db: failed to acquire connection from pool")

	// State-class errors: transaction or query operations against a session
	// in the wrong state. These indicate a programming error in the caller.
	ErrSessionReleased = errors.New("db: session already released")
	ErrTxActive        = errors.New("db: transaction already in progress")
	ErrNoTransaction   = errors.New("db: no active transaction")
)

// QueryError wraps a driver failure together with the offending statement and
// its parameters for diagnostics. Queries are never retried automatically.
type QueryError struct {
	SQL  string
	Args []any
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("db: query failed: %v (sql: %q, args: %v)", e.Err, e.SQL, e.Args)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// AsQueryError extracts a QueryError from an error chain if present.
func AsQueryError(err error) (*QueryError, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
