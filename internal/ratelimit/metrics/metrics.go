// Package metrics provides Prometheus metrics for request rate limiting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	DecisionsTotal   *prometheus.CounterVec // by class and outcome
	StoreErrorsTotal *prometheus.CounterVec // by class; requests are let through
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DecisionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_ratelimit_decisions_total",
			Help: "Rate limit checks by class and outcome",
		}, []string{"class", "outcome"}),
		StoreErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_ratelimit_store_errors_total",
			Help: "Rate limit store failures by class",
		}, []string{"class"}),
	}
}

func (m *Metrics) RecordDecision(class string, allowed bool) {
	outcome := "allowed"
	if !allowed {
		outcome = "limited"
	}
	m.DecisionsTotal.WithLabelValues(class, outcome).Inc()
}

func (m *Metrics) RecordStoreError(class string) {
	m.StoreErrorsTotal.WithLabelValues(class).Inc()
}
