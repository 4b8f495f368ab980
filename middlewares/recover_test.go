package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restbase/restbase/internal"
	"github.com/restbase/restbase/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes a PanicError with the request line", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Recover()
		handler := mw(func(c internal.Context) error {
			panic("nil user row")
		})

		err := handler(ctx)
		require.True(t, middlewares.IsPanicError(err))

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, "nil user row", pe.Value)
		require.Equal(t, http.MethodPost, pe.Method)
		require.Equal(t, "/auth/register", pe.Path)
		require.NotEmpty(t, pe.Stack)
		require.Contains(t, ctx.logs, "panic recovered")
	})

	t.Run("clean handler passes through untouched", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Recover()
		require.NoError(t, mw(func(c internal.Context) error { return nil })(ctx))
	})

	t.Run("handler error is not mistaken for a panic", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handlerErr := errors.New("duplicate email")
		mw := middlewares.Recover()

		err := mw(func(c internal.Context) error { return handlerErr })(ctx)
		require.Equal(t, handlerErr, err)
		require.False(t, middlewares.IsPanicError(err))
	})

	t.Run("error value panics keep their value", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		panicErr := errors.New("corrupt state")
		mw := middlewares.Recover()
		err := mw(func(c internal.Context) error { panic(panicErr) })(ctx)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Equal(t, panicErr, pe.Value)
	})

	t.Run("panic(nil) surfaces as runtime.PanicNilError", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Recover()
		err := mw(func(c internal.Context) error {
			panic(nil) //nolint:govet // intentional: testing panic(nil) handling
		})(ctx)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.IsType(t, (*runtime.PanicNilError)(nil), pe.Value)
	})

	t.Run("DisablePrintStack drops the trace", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())
		err := mw(func(c internal.Context) error { panic("quiet") })(ctx)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("custom stack size bounds the trace", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Recover(middlewares.WithRecoverStackSize(100))
		err := mw(func(c internal.Context) error { panic("bounded") })(ctx)

		pe, ok := middlewares.AsPanicError(err)
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 100)
	})

	t.Run("recovered panic renders the generic 500 envelope", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/auth/list", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Recover()
		err := mw(func(c internal.Context) error { panic("boom") })(ctx)
		require.Error(t, err)

		require.NoError(t, internal.JSONErrorHandler(true)(ctx, err))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"error":true,"message":"Internal server error."}`, rec.Body.String())
	})
}
