package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "motorhub/pkg/domain-errors"
)

func sample() Report {
	return Report{
		Registration: "MH12AB1234",
		Challans: []Challan{
			{ID: "c1", Amount: 1000, Status: StatusPending},
			{ID: "c2", Amount: 5000, Status: StatusPending},
			{ID: "c3", Amount: 2000, Status: StatusPaid},
			{ID: "c4", Amount: 10000, Status: StatusInCourt},
		},
	}.Recompute()
}

func TestRecompute(t *testing.T) {
	r := sample()
	assert.Equal(t, 2, r.PendingCount)
	assert.Equal(t, int64(6000), r.PendingAmount)
	assert.Equal(t, int64(2000), r.PaidAmount)
}

func TestMarkPaid(t *testing.T) {
	paidAt := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	before := sample()
	after := before.MarkPaid([]string{"c1", "c4", "missing"}, paidAt)

	c1, ok := after.Find("c1")
	require.True(t, ok)
	assert.Equal(t, StatusPaid, c1.Status)
	require.NotNil(t, c1.PaidAt)
	assert.Equal(t, paidAt, *c1.PaidAt)

	c4, _ := after.Find("c4")
	assert.Equal(t, StatusInCourt, c4.Status, "court challans are never marked paid")

	assert.Equal(t, 1, after.PendingCount)
	assert.Equal(t, int64(3000), after.PaidAmount)

	orig, _ := before.Find("c1")
	assert.Equal(t, StatusPending, orig.Status, "receiver is unchanged")
}

func TestPaymentRequestValidation(t *testing.T) {
	valid := PaymentRequest{Registration: " mh12ab1234 ", ChallanIDs: []string{"c1"}, Method: MethodUPI}
	valid.Normalize()
	require.NoError(t, valid.Validate())
	assert.Equal(t, "MH12AB1234", valid.Registration)

	invalid := map[string]PaymentRequest{
		"no challans":    {Registration: "MH12AB1234", Method: MethodCard},
		"duplicates":     {Registration: "MH12AB1234", ChallanIDs: []string{"c1", "c1"}, Method: MethodCard},
		"blank id":       {Registration: "MH12AB1234", ChallanIDs: []string{" "}, Method: MethodCard},
		"unknown method": {Registration: "MH12AB1234", ChallanIDs: []string{"c1"}, Method: "cash"},
	}
	for name, req := range invalid {
		t.Run(name, func(t *testing.T) {
			err := req.Validate()
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
		})
	}
}
