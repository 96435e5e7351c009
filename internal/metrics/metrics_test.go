package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveNavigation(t *testing.T) {
	m := New()

	m.ObserveNavigation("next", true)
	m.ObserveNavigation("next", false)
	m.ObserveNavigation("next", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigation.WithLabelValues("next", "true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Navigation.WithLabelValues("next", "false")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	sessions := 3
	m.RegisterSessions(func() int { return sessions })
	m.PageViews.WithLabelValues("/").Inc()
	m.RevealStreams.WithLabelValues(OutcomeCompleted).Inc()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `portfolio_page_views_total{route="/"} 1`)
	assert.Contains(t, body, `portfolio_reveal_streams_total{outcome="completed"} 1`)
	assert.Contains(t, body, "portfolio_active_sessions 3")
	assert.Contains(t, body, "go_goroutines")
}
