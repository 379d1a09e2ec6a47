package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boardgame-catalog-api/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_MiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/games/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/games/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.requestDuration))
}

func TestCollector_RecordTransitionAndChange(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordTransition(domain.AuthStateAuthenticated, "success")
	c.RecordTransition(domain.AuthStateAuthenticated, "success")
	c.RecordChange(&domain.ChangeEvent{Kind: "game", Action: domain.ChangeCreated})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.authTransitions.WithLabelValues("authenticated", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.changes.WithLabelValues("game", "created")))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordChange(&domain.ChangeEvent{Kind: "review", Action: domain.ChangeDeleted})

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `boardgames_catalog_changes_total{action="deleted",kind="review"} 1`))
}
