package middlewares

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PanicError is what the Recover middleware hands to the error handler in
// place of a crashed request. Value holds the recovered panic, Stack the
// captured trace, Method and Path identify the request that triggered it.
type PanicError struct {
	Value  any
	Stack  []byte
	Method string
	Path   string
}

func (e *PanicError) Error() string {
	if e.Method == "" && e.Path == "" {
		return fmt.Sprintf("panic: %v", e.Value)
	}
	return fmt.Sprintf("panic serving %s %s: %v", e.Method, e.Path, e.Value)
}

// TimeoutError is returned by the Timeout middleware when a handler misses
// its deadline. It unwraps to context.DeadlineExceeded, so the JSON error
// handler answers 504 without knowing about this package.
type TimeoutError struct {
	Method string
	Path   string
	Limit  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %s exceeded %s", e.Method, e.Path, e.Limit)
}

func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// IsPanicError reports whether the error chain contains a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// IsTimeoutError reports whether the error chain contains a TimeoutError.
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// AsPanicError extracts a PanicError from an error chain if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsTimeoutError extracts a TimeoutError from an error chain if present.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
