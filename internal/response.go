package internal

import (
	"context"
	"errors"
	"net/http"

	"github.com/restbase/restbase/pkg/db"
	"github.com/restbase/restbase/pkg/qb"
)

// Envelope is the uniform JSON response body. Every endpoint answers with
// it: Error false for success payloads, true for failures.
type Envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
}

// OK builds a success envelope carrying a payload.
func OK(message string, data any) Envelope {
	return Envelope{Message: message, Data: data}
}

// Fail builds an error envelope.
func Fail(message string) Envelope {
	return Envelope{Error: true, Message: message}
}

// JSONErrorHandler renders handler errors as JSON envelopes. Status codes
// come from the error's type: HTTPError carries its own code, database and
// builder failures map to fixed codes, anything else is a 500.
//
// When production is true, non-HTTP errors answer with a generic message so
// internals never leak to clients. In development the underlying error text
// is passed through to speed up debugging.
func JSONErrorHandler(production bool) ErrorHandler {
	return func(c Context, err error) error {
		code, msg := classifyError(err, production)
		return c.JSON(code, Fail(msg))
	}
}

// classifyError maps an error to an HTTP status and client-facing message.
func classifyError(err error, production bool) (int, string) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}

	switch {
	case qb.IsDangerousQuery(err):
		// A predicate-less write is a programming error in the handler,
		// never a client problem.
		return http.StatusInternalServerError, detail(err, production, "Internal server error.")

	case errors.Is(err, db.ErrMissingRequestID), errors.Is(err, db.ErrAcquireConnection):
		return http.StatusServiceUnavailable, detail(err, production, "Service temporarily unavailable.")

	case errors.Is(err, db.ErrSessionReleased),
		errors.Is(err, db.ErrTxActive),
		errors.Is(err, db.ErrNoTransaction):
		return http.StatusInternalServerError, detail(err, production, "Internal server error.")

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out."
	}

	if _, ok := db.AsQueryError(err); ok {
		return http.StatusInternalServerError, detail(err, production, "Internal server error.")
	}

	return http.StatusInternalServerError, detail(err, production, "Internal server error.")
}

// detail returns the raw error text in development and the generic message
// in production.
func detail(err error, production bool, generic string) string {
	if production {
		return generic
	}
	return err.Error()
}

// NotFoundHandler answers unmatched routes with the standard envelope.
func NotFoundHandler() HandlerFunc {
	return func(c Context) error {
		return c.JSON(http.StatusNotFound, Fail("Not found."))
	}
}

// MethodNotAllowedHandler answers known routes hit with the wrong verb.
func MethodNotAllowedHandler() HandlerFunc {
	return func(c Context) error {
		return c.JSON(http.StatusMethodNotAllowed, Fail("Method not allowed."))
	}
}
