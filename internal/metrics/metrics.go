// Package metrics defines the Prometheus collectors of the site. Nothing is
// persisted; counters live for the process lifetime.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reveal stream outcomes.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)

type Metrics struct {
	Registry      *prometheus.Registry
	PageViews     *prometheus.CounterVec
	RevealStreams *prometheus.CounterVec
	Navigation    *prometheus.CounterVec
}

// New builds collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		PageViews: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_page_views_total",
				Help: "Page views by route, excluding visitors sending DNT.",
			},
			[]string{"route"},
		),
		RevealStreams: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_reveal_streams_total",
				Help: "Typewriter streams by outcome.",
			},
			[]string{"outcome"},
		),
		Navigation: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_carousel_navigation_total",
				Help: "Carousel intents by direction and whether the window moved.",
			},
			[]string{"direction", "moved"},
		),
	}
	m.Registry.MustRegister(
		m.PageViews,
		m.RevealStreams,
		m.Navigation,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RegisterSessions exposes the live session count as a gauge.
func (m *Metrics) RegisterSessions(count func() int) {
	m.Registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "portfolio_active_sessions",
			Help: "Page sessions currently held in memory.",
		},
		func() float64 { return float64(count()) },
	))
}

// ObserveNavigation counts one carousel intent.
func (m *Metrics) ObserveNavigation(direction string, moved bool) {
	label := "false"
	if moved {
		label = "true"
	}
	m.Navigation.WithLabelValues(direction, label).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
