// Package metrics provides Prometheus metrics for the notification log.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EntriesTotal      *prometheus.CounterVec // log entries appended, by kind
	PromptDecisions   *prometheus.CounterVec // prompt checks, by reason
	CorruptBlobsTotal *prometheus.CounterVec // unreadable blobs discarded, by blob
	StoreErrorsTotal  *prometheus.CounterVec // backend failures, by operation
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EntriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_notification_entries_total",
			Help: "Notification log entries appended by kind",
		}, []string{"kind"}),

		PromptDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_notification_prompt_decisions_total",
			Help: "Permission prompt checks by reason",
		}, []string{"reason"}),

		CorruptBlobsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_notification_corrupt_blobs_total",
			Help: "Stored notification blobs that could not be decoded and were reset",
		}, []string{"blob"}),

		StoreErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motorhub_notification_store_errors_total",
			Help: "Notification store failures by operation",
		}, []string{"operation"}),
	}
}

func (m *Metrics) RecordEntry(kind string) {
	m.EntriesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordPromptDecision(reason string) {
	m.PromptDecisions.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordCorrupt(blob string) {
	m.CorruptBlobsTotal.WithLabelValues(blob).Inc()
}

func (m *Metrics) RecordStoreError(operation string) {
	m.StoreErrorsTotal.WithLabelValues(operation).Inc()
}
