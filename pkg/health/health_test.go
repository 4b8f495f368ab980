package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restbase/restbase/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		health.LivenessHandler()(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "OK", w.Body.String())
	})

	t.Run("json on accept header", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		r.Header.Set("Accept", "application/json")
		health.LivenessHandler()(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp health.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, health.StatusHealthy, resp.Status)
	})
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"a": func(context.Context) error { return nil },
			"b": func(context.Context) error { return nil },
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil)
		health.ReadinessHandler(checks)(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp health.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, health.StatusHealthy, resp.Status)
		require.Len(t, resp.Checks, 2)
	})

	t.Run("one failing check marks service unavailable", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"ok":  func(context.Context) error { return nil },
			"bad": func(context.Context) error { return errors.New("connection refused") },
		}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil)
		health.ReadinessHandler(checks)(w, r)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp health.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, health.StatusUnhealthy, resp.Status)
		require.Equal(t, health.StatusHealthy, resp.Checks["ok"].Status)
		require.Equal(t, "connection refused", resp.Checks["bad"].Error)
	})

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		health.ReadinessHandler(nil)(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "OK", w.Body.String())
	})
}
