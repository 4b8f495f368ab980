package internal_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restbase/restbase/internal"
)

type testHandler struct {
	routes func(r internal.Router)
}

func (h *testHandler) Routes(r internal.Router) { h.routes(r) }

func TestAppRouting(t *testing.T) {
	t.Parallel()

	t.Run("registered route is served", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHandlers(&testHandler{routes: func(r internal.Router) {
				r.GET("/ping", func(c internal.Context) error {
					return c.String(http.StatusOK, "pong")
				})
			}}),
		)

		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "pong", w.Body.String())
	})

	t.Run("url params reach the handler", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHandlers(&testHandler{routes: func(r internal.Router) {
				r.GET("/users/{id}", func(c internal.Context) error {
					return c.String(http.StatusOK, c.Param("id"))
				})
			}}),
		)

		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))

		require.Equal(t, "42", w.Body.String())
	})

	t.Run("unmatched route uses the not found handler", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithNotFoundHandler(internal.NotFoundHandler()),
		)

		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

		require.Equal(t, http.StatusNotFound, w.Code)

		var env internal.Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.True(t, env.Error)
		require.Equal(t, "Not found.", env.Message)
	})

	t.Run("handler error reaches the error handler", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithErrorHandler(internal.JSONErrorHandler(true)),
			internal.WithHandlers(&testHandler{routes: func(r internal.Router) {
				r.GET("/fail", func(c internal.Context) error {
					return internal.NewHTTPError(http.StatusConflict, "taken")
				})
			}}),
		)

		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("global middleware wraps every route", func(t *testing.T) {
		t.Parallel()

		var seen []string
		mw := func(name string) internal.Middleware {
			return func(next internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					seen = append(seen, name)
					return next(c)
				}
			}
		}

		app := internal.New(
			internal.WithMiddleware(mw("first"), mw("second")),
			internal.WithHandlers(&testHandler{routes: func(r internal.Router) {
				r.GET("/", func(c internal.Context) error {
					return c.NoContent(http.StatusNoContent)
				})
			}}),
		)

		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, []string{"first", "second"}, seen)
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("route groups share a prefix", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHandlers(&testHandler{routes: func(r internal.Router) {
				r.Route("/api", func(r internal.Router) {
					r.GET("/status", func(c internal.Context) error {
						return c.String(http.StatusOK, "up")
					})
				})
			}}),
		)

		w := httptest.NewRecorder()
		app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "up", w.Body.String())
	})
}

func TestAppRBAC(t *testing.T) {
	t.Parallel()

	type roleKey struct{}

	newApp := func(role string) *internal.App {
		return internal.New(
			internal.WithRoles(
				internal.RolePermissions{
					"admin":  {"users.read", "users.write"},
					"member": {"users.read"},
				},
				func(c internal.Context) string { return role },
			),
			internal.WithHandlers(&testHandler{routes: func(r internal.Router) {
				r.GET("/secure", func(c internal.Context) error {
					c.Set(roleKey{}, role)
					if !c.Can("users.write") {
						return c.NoContent(http.StatusForbidden)
					}
					return c.NoContent(http.StatusOK)
				})
			}}),
		)
	}

	t.Run("admin passes", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		newApp("admin").Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("member is denied write", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		newApp("member").Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown role is denied", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		newApp("ghost").Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
