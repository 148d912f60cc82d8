package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payequity/internal/platform/metrics"
)

type pingHandler struct{}

func (pingHandler) Register(r chi.Router) {
	r.Get("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/v1/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

func newTestRouter(checks map[string]HealthCheck) (http.Handler, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Gatherer: reg,
		Metrics:  metrics.New(reg),
		Checks:   checks,
		Handlers: []Registrar{pingHandler{}},
	}), reg
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHealth(t *testing.T) {
	t.Run("no dependencies", func(t *testing.T) {
		router, _ := newTestRouter(nil)
		w := serve(router, "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("failing dependency", func(t *testing.T) {
		router, _ := newTestRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})
		w := serve(router, "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp healthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, map[string]string{"postgres": "ok", "redis": "unavailable"}, resp.Checks)
	})
}

func TestRoutes(t *testing.T) {
	router, _ := newTestRouter(nil)

	t.Run("mounted handler", func(t *testing.T) {
		w := serve(router, "/v1/ping")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("panics are recovered", func(t *testing.T) {
		w := serve(router, "/v1/panic")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("metrics exposes request counters", func(t *testing.T) {
		serve(router, "/v1/ping")
		w := serve(router, "/metrics")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `payequity_http_requests_total{method="GET",route="/v1/ping",status="204"}`)
	})
}
