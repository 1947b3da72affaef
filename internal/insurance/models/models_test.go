package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "motorhub/pkg/domain-errors"
)

func TestPolicyStatusAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		expiry time.Time
		want   PolicyStatus
		renew  bool
	}{
		{"far from expiry", now.AddDate(0, 6, 0), PolicyActive, false},
		{"61 days out", now.AddDate(0, 0, 61), PolicyActive, false},
		{"59 days out", now.AddDate(0, 0, 59), PolicyActive, false},
		{"31 days out", now.AddDate(0, 0, 31), PolicyActive, false},
		{"30 days out", now.AddDate(0, 0, 30), PolicyExpiringSoon, true},
		{"expiring soon", now.AddDate(0, 0, 10), PolicyExpiringSoon, true},
		{"expires now", now, PolicyExpired, true},
		{"expired", now.AddDate(0, 0, -3), PolicyExpired, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, p.StatusAt(now))
			assert.Equal(t, tt.renew, p.Renewable(now))
		})
	}
}

func TestReportWithPolicyCopiesAddOns(t *testing.T) {
	addOns := []string{"consumables"}
	r := Report{Registration: "MH12AB1234"}.WithPolicy(Policy{PolicyNumber: "P-1", AddOns: addOns}, time.Unix(0, 0))
	addOns[0] = "changed"

	assert.Equal(t, "P-1", r.Policy.PolicyNumber)
	assert.Equal(t, []string{"consumables"}, r.Policy.AddOns)
	assert.Equal(t, "MH12AB1234", r.Key())
}

func TestRenewalRequest(t *testing.T) {
	t.Run("normalizes and defaults the term", func(t *testing.T) {
		req := RenewalRequest{Registration: "mh 12 ab 1234", PlanType: PlanComprehensive}
		req.Normalize()
		require.NoError(t, req.Validate())
		assert.Equal(t, "MH12AB1234", req.Registration)
		assert.Equal(t, 1, req.TermYears)
	})

	t.Run("folds add-on case and repeats", func(t *testing.T) {
		req := RenewalRequest{
			Registration: "MH12AB1234",
			PlanType:     " Comprehensive",
			AddOns:       []string{"Consumables ", "consumables", "ROADSIDE_ASSISTANCE"},
		}
		req.Normalize()
		require.NoError(t, req.Validate())
		assert.Equal(t, PlanComprehensive, req.PlanType)
		assert.Equal(t, []string{"consumables", "roadside_assistance"}, req.AddOns)
	})

	invalid := map[string]RenewalRequest{
		"bad registration": {Registration: "XYZ", PlanType: PlanComprehensive, TermYears: 1},
		"unknown plan":     {Registration: "MH12AB1234", PlanType: "platinum", TermYears: 1},
		"long term":        {Registration: "MH12AB1234", PlanType: PlanThirdParty, TermYears: 5},
		"unknown add-on":   {Registration: "MH12AB1234", PlanType: PlanComprehensive, TermYears: 1, AddOns: []string{"jetpack"}},
		"duplicate add-on": {Registration: "MH12AB1234", PlanType: PlanComprehensive, TermYears: 1, AddOns: []string{"consumables", "consumables"}},
	}
	for name, req := range invalid {
		t.Run(name, func(t *testing.T) {
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}
