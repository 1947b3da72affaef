package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordSearch("insurance", OutcomeSuccess, 0.8)
	m.RecordSearch("insurance", OutcomeSuccess, 0.9)
	m.RecordSearch("challan", OutcomeError, 0.1)
	m.RecordShared("insurance")
	m.RecordAction("challan", "save_report")
	m.RecordTransaction("challan", OutcomeRejected)
	m.SetActiveOwners("insurance", 3)

	assert.InDelta(t, 2, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("insurance", OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("challan", OutcomeError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SharedSearchesTotal.WithLabelValues("insurance")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("challan", "save_report")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.TransactionsTotal.WithLabelValues("challan", OutcomeRejected)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.ActiveOwners.WithLabelValues("insurance")), 0)
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
