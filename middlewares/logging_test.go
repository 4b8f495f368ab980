package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restbase/restbase/internal"
	"github.com/restbase/restbase/middlewares"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("logs start and completion", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		mw := middlewares.Logging()
		handler := mw(func(c internal.Context) error { return nil })

		require.NoError(t, handler(ctx))
		require.Contains(t, ctx.logs, "request started")
		require.Contains(t, ctx.logs, "request completed")
	})

	t.Run("handler error is logged and passed through", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		rec := httptest.NewRecorder()
		ctx := newTestContext(rec, req)

		handlerErr := errors.New("invalid credentials")
		mw := middlewares.Logging()
		handler := mw(func(c internal.Context) error { return handlerErr })

		err := handler(ctx)
		require.ErrorIs(t, err, handlerErr)
		require.Contains(t, ctx.logs, "request failed")
		require.NotContains(t, ctx.logs, "request completed")
	})
}
