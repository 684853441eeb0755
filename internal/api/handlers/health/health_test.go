package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leftover-chef/internal/core/queue"
	"leftover-chef/internal/core/recipe"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestReadiness(t *testing.T) {
	stats := func(size int) func() recipe.Stats {
		return func() recipe.Stats { return recipe.Stats{CorpusSize: size} }
	}
	pingOK := func(context.Context) error { return nil }
	pingErr := func(context.Context) error { return errors.New("disk I/O error") }

	tests := []struct {
		name   string
		deps   Dependencies
		status int
		check  string
	}{
		{"ready", Dependencies{Stats: stats(3), Ping: pingOK}, http.StatusOK, `"corpus":"ok"`},
		{"empty corpus", Dependencies{Stats: stats(0), Ping: pingOK}, http.StatusServiceUnavailable, `"corpus":"empty"`},
		{"database down", Dependencies{Stats: stats(3), Ping: pingErr}, http.StatusServiceUnavailable, `"database":"unavailable"`},
		{"queue closed", Dependencies{Stats: stats(3), Queue: func() *queue.Status { return &queue.Status{Closed: true} }}, http.StatusServiceUnavailable, `"queue":"closed"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(NewHandler(tt.deps), "/ready")
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.check)
		})
	}
}

func TestHealthReportsRotation(t *testing.T) {
	h := NewHandler(Dependencies{
		Version: "1.2.3",
		Stats:   func() recipe.Stats { return recipe.Stats{CorpusSize: 2, Served: 1, TotalFoodSaved: 0.45} },
		Cache:   func() map[string]interface{} { return map[string]interface{}{"size": 4} },
	})

	w := serve(h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"version":"1.2.3"`)
	assert.Contains(t, body, `"served":1`)
	assert.Contains(t, body, `"size":4`)
	assert.NotContains(t, body, `"queue"`)

	assert.Equal(t, http.StatusOK, serve(h, "/live").Code)
}
