package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theirongolddev/julmat/internal/model"
)

// Metrics holds the server's prometheus collectors.
type Metrics struct {
	reg *prometheus.Registry

	requests *prometheus.CounterVec
	toggles  *prometheus.CounterVec
	items    prometheus.Gauge
	done     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		reg: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "julmat",
				Name:      "http_requests_total",
				Help:      "HTTP requests by endpoint and status code.",
			},
			[]string{"endpoint", "code"},
		),
		toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "julmat",
				Name:      "toggles_total",
				Help:      "Status flag changes by field.",
			},
			[]string{"field"},
		),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "julmat",
			Name:      "items",
			Help:      "Items in the loaded list.",
		}),
		done: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "julmat",
			Name:      "items_done",
			Help:      "Items both bought and cooked.",
		}),
	}
	reg.MustRegister(m.requests, m.toggles, m.items, m.done)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) setProgress(t model.Totals) {
	m.items.Set(float64(t.Total))
	m.done.Set(float64(t.Done))
}
