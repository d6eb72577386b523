// cmd/worker-manager/main_test.go
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsMux(t *testing.T) {
	checks := map[string]func(context.Context) error{
		"zeebe":    func(context.Context) error { return nil },
		"postgres": func(context.Context) error { return stderrors.New("connection refused") },
	}
	mux := newOpsMux(checks)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{name: "health", path: "/health", expectedStatus: http.StatusOK},
		{name: "ready with failing dependency", path: "/ready", expectedStatus: http.StatusServiceUnavailable},
		{name: "metrics", path: "/metrics", expectedStatus: http.StatusOK},
		{name: "pprof index", path: "/debug/pprof/", expectedStatus: http.StatusOK},
		{name: "pprof goroutine profile", path: "/debug/pprof/goroutine?debug=1", expectedStatus: http.StatusOK},
		{name: "unknown path", path: "/nope", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestReadiness(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		status, body := readiness(context.Background(), map[string]func(context.Context) error{
			"redis": func(context.Context) error { return nil },
		})

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, map[string]string{"redis": "ok"}, body["checks"])
	})

	t.Run("failing check is reported", func(t *testing.T) {
		status, body := readiness(context.Background(), map[string]func(context.Context) error{
			"redis":         func(context.Context) error { return nil },
			"elasticsearch": func(context.Context) error { return stderrors.New("no living connections") },
		})

		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "not ready", body["status"])
		assert.Equal(t, map[string]string{"redis": "ok", "elasticsearch": "no living connections"}, body["checks"])
	})
}

func TestReadyEndpointBody(t *testing.T) {
	mux := newOpsMux(map[string]func(context.Context) error{
		"zeebe": func(context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}
