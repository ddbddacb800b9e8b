// Package metrics exposes tracking counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements port.Recorder.
type Metrics struct {
	clicks      prometheus.Counter
	clickErrors prometheus.Counter
	purchases   *prometheus.CounterVec
	gatherer    prometheus.Gatherer
}

// New registers the tracking counters on reg. reg should also implement
// prometheus.Gatherer for Handler to serve it; a *prometheus.Registry does.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		clicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "adtrack",
			Name:      "clicks_total",
			Help:      "Tracking link clicks counted.",
		}),
		clickErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "adtrack",
			Name:      "click_failures_total",
			Help:      "Tracking link visits that failed to persist a click.",
		}),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "adtrack",
			Name:      "order_webhooks_total",
			Help:      "Order webhooks processed, by attribution outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.clicks, m.clickErrors, m.purchases)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Click counts a tracked click.
func (m *Metrics) Click() { m.clicks.Inc() }

// ClickFailed counts a click that could not be persisted.
func (m *Metrics) ClickFailed() { m.clickErrors.Inc() }

// Purchase counts an order webhook by attribution outcome.
func (m *Metrics) Purchase(outcome string) {
	m.purchases.WithLabelValues(outcome).Inc()
}

// Handler serves the registry the metrics were registered on, or the
// default gatherer when that registry cannot be gathered.
func (m *Metrics) Handler() http.Handler {
	if m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
