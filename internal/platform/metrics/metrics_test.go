package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/pets/{petID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/pets/{petID}", "418")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body), "http_request_duration_seconds")
}

func TestRecommendationOutcome(t *testing.T) {
	m := New()
	m.RecommendationOutcome("fallback")
	m.RecommendationOutcome("fallback")
	m.RecommendationOutcome("generated")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.recommendations.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recommendations.WithLabelValues("generated")))
}
