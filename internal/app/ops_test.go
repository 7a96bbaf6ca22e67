package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/feedback360-server/pkg/metrics"
)

func TestOpsRouter(t *testing.T) {
	m := metrics.New()
	m.CacheHit("GetResults")

	ok := healthCheck{name: "database", check: func(ctx context.Context) error { return nil }}
	down := healthCheck{name: "cache", check: func(ctx context.Context) error { return errors.New("connection refused") }}

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newOpsRouter(m.Registry(), ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `feedback360_cache_lookups_total{op="GetResults",outcome="hit"} 1`)
	})

	t.Run("healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newOpsRouter(m.Registry(), ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"database": "ok"}, body)
	})

	t.Run("unhealthy dependency", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newOpsRouter(m.Registry(), ok, down).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["database"])
		assert.Equal(t, "connection refused", body["cache"])
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newOpsRouter(m.Registry()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
