// Package metrics exposes prometheus collectors for the admin render pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "adminview"

// Metrics owns a private prometheus registry so tests and multiple servers in
// one process do not collide on the default registerer.
type Metrics struct {
	registry  *prometheus.Registry
	rendered  *prometheus.CounterVec
	rewritten prometheus.Counter
	duration  prometheus.Histogram
	denied    *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_rendered_total",
			Help:      "Views rendered, by outcome.",
		}, []string{"outcome"}),
		rewritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_rewritten_total",
			Help:      "Views whose template identifier was changed by decoration.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_render_duration_seconds",
			Help:      "Time spent decorating and rendering a view.",
			Buckets:   prometheus.DefBuckets,
		}),
		denied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_denied_total",
			Help:      "Requests rejected by the authentication guard, by feature.",
		}, []string{"feature"}),
	}
	m.registry.MustRegister(m.rendered, m.rewritten, m.duration, m.denied)
	return m
}

// Decorated records a decoration pass.
func (m *Metrics) Decorated(original, final string) {
	if m == nil {
		return
	}
	if original != final {
		m.rewritten.Inc()
	}
}

// Rendered records a completed render attempt.
func (m *Metrics) Rendered(_ string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.rendered.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// Denied records a guard rejection for feature.
func (m *Metrics) Denied(feature string) {
	if m == nil {
		return
	}
	m.denied.WithLabelValues(feature).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
