package internal

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restbase/restbase/pkg/db"
	"github.com/restbase/restbase/pkg/logger"
	"github.com/restbase/restbase/pkg/qb"
)

func newResponseTestContext(t *testing.T) (*requestContext, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	app := &App{logger: logger.NewNope()}
	return newContext(w, r, app), w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestJSONErrorHandler(t *testing.T) {
	t.Run("http error keeps its code and message", func(t *testing.T) {
		c, w := newResponseTestContext(t)

		h := JSONErrorHandler(true)
		require.NoError(t, h(c, NewHTTPError(http.StatusConflict, "email already taken")))

		require.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		require.True(t, env.Error)
		require.Equal(t, "email already taken", env.Message)
	})

	t.Run("acquire failure maps to 503", func(t *testing.T) {
		c, w := newResponseTestContext(t)

		h := JSONErrorHandler(true)
		require.NoError(t, h(c, db.ErrAcquireConnection))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		env := decodeEnvelope(t, w)
		require.Equal(t, "Service temporarily unavailable.", env.Message)
	})

	t.Run("dangerous query maps to 500", func(t *testing.T) {
		c, w := newResponseTestContext(t)

		h := JSONErrorHandler(true)
		err := &qb.DangerousQueryError{Op: "delete", Table: "users"}
		require.NoError(t, h(c, err))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("production hides error detail", func(t *testing.T) {
		c, w := newResponseTestContext(t)

		h := JSONErrorHandler(true)
		require.NoError(t, h(c, errors.New("pq: duplicate key value violates unique constraint")))

		env := decodeEnvelope(t, w)
		require.Equal(t, "Internal server error.", env.Message)
	})

	t.Run("development passes error detail through", func(t *testing.T) {
		c, w := newResponseTestContext(t)

		h := JSONErrorHandler(false)
		require.NoError(t, h(c, errors.New("pq: duplicate key value violates unique constraint")))

		env := decodeEnvelope(t, w)
		require.Contains(t, env.Message, "duplicate key")
	})

	t.Run("query error maps to 500 and hides sql in production", func(t *testing.T) {
		c, w := newResponseTestContext(t)

		h := JSONErrorHandler(true)
		qe := &db.QueryError{SQL: "SELECT secret FROM vault", Err: errors.New("boom")}
		require.NoError(t, h(c, qe))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w)
		require.NotContains(t, env.Message, "vault")
	})
}

func TestNotFoundHandler(t *testing.T) {
	c, w := newResponseTestContext(t)

	require.NoError(t, NotFoundHandler()(c))

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Error)
	require.Equal(t, "Not found.", env.Message)
}

func TestMethodNotAllowedHandler(t *testing.T) {
	c, w := newResponseTestContext(t)

	require.NoError(t, MethodNotAllowedHandler()(c))

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Error)
}

func TestEnvelopeShapes(t *testing.T) {
	t.Run("success envelope omits empty fields", func(t *testing.T) {
		b, err := json.Marshal(OK("User created.", nil))
		require.NoError(t, err)
		require.JSONEq(t, `{"error":false,"message":"User created."}`, string(b))
	})

	t.Run("success envelope carries data", func(t *testing.T) {
		b, err := json.Marshal(OK("ok", map[string]any{"id": 1}))
		require.NoError(t, err)
		require.JSONEq(t, `{"error":false,"message":"ok","data":{"id":1}}`, string(b))
	})

	t.Run("failure envelope", func(t *testing.T) {
		b, err := json.Marshal(Fail("Invalid credentials."))
		require.NoError(t, err)
		require.JSONEq(t, `{"error":true,"message":"Invalid credentials."}`, string(b))
	})
}
