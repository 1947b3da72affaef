// Package metrics provides Prometheus metrics for the lookup services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

type Metrics struct {
	SearchesTotal         *prometheus.CounterVec   // by domain, outcome
	SearchDurationSeconds *prometheus.HistogramVec // by domain
	SharedSearchesTotal   *prometheus.CounterVec   // searches joined to an in-flight fetch, by domain
	ActionsTotal          *prometheus.CounterVec   // slice dispatches by domain, action
	TransactionsTotal     *prometheus.CounterVec   // renewals and payments by domain, outcome
	ActiveOwners          *prometheus.GaugeVec     // owners with a live slice, by domain
}

// New registers the lookup metrics with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SearchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_lookup_searches_total",
			Help: "Total number of lookup searches by domain and outcome",
		}, []string{"domain", "outcome"}),

		SearchDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "motorhub_lookup_search_duration_seconds",
			Help:    "Duration of lookup searches including upstream latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"domain"}),

		SharedSearchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_lookup_shared_searches_total",
			Help: "Searches that joined an identical in-flight upstream fetch",
		}, []string{"domain"}),

		ActionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_lookup_actions_total",
			Help: "Slice actions dispatched by domain and action",
		}, []string{"domain", "action"}),

		TransactionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_lookup_transactions_total",
			Help: "Policy renewals and challan payments by domain and outcome",
		}, []string{"domain", "outcome"}),

		ActiveOwners: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "motorhub_lookup_active_owners",
			Help: "Number of users holding lookup state in memory",
		}, []string{"domain"}),
	}
}

func (m *Metrics) RecordSearch(domain, outcome string, durationSeconds float64) {
	m.SearchesTotal.WithLabelValues(domain, outcome).Inc()
	m.SearchDurationSeconds.WithLabelValues(domain).Observe(durationSeconds)
}

func (m *Metrics) RecordShared(domain string) {
	m.SharedSearchesTotal.WithLabelValues(domain).Inc()
}

func (m *Metrics) RecordAction(domain, action string) {
	m.ActionsTotal.WithLabelValues(domain, action).Inc()
}

func (m *Metrics) RecordTransaction(domain, outcome string) {
	m.TransactionsTotal.WithLabelValues(domain, outcome).Inc()
}

func (m *Metrics) SetActiveOwners(domain string, n int) {
	m.ActiveOwners.WithLabelValues(domain).Set(float64(n))
}
