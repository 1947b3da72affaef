package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorhub/internal/insurance/models"
	"motorhub/internal/lookup/providers"
	id "motorhub/pkg/domain"
)

var now = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func TestGenerateIsDeterministic(t *testing.T) {
	reg := id.MustRegistrationNumber("MH12AB1234")
	a, err := Generate(reg, now)
	require.NoError(t, err)
	b, err := Generate(reg, now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "MH12AB1234", a.Key())
	assert.Equal(t, a.Policy, b.Policy)
	assert.Equal(t, a.Vehicle, b.Vehicle)
	assert.Equal(t, a.Policy.StatusAt(day(now)), a.Policy.Status)
	assert.Positive(t, a.Policy.Premium)

	other, err := Generate(id.MustRegistrationNumber("DL01CD5678"), now)
	require.NoError(t, err)
	assert.NotEqual(t, a.Policy.PolicyNumber, other.Policy.PolicyNumber)
}

func TestGenerateFailures(t *testing.T) {
	_, err := Generate(id.MustRegistrationNumber("MH12AB0000"), now)
	assert.Equal(t, providers.ErrorNotFound, providers.GetCategory(err))

	_, err = Generate(id.MustRegistrationNumber("MH12AB9999"), now)
	assert.Equal(t, providers.ErrorProviderOutage, providers.GetCategory(err))
	assert.True(t, providers.IsRetryable(err))
}

func TestRenew(t *testing.T) {
	reg := id.MustRegistrationNumber("MH12AB1020")
	before, err := Generate(reg, now)
	require.NoError(t, err)

	receipt, err := Renew(reg, models.RenewalRequest{
		Registration: reg.String(),
		PlanType:     models.PlanComprehensive,
		TermYears:    2,
		AddOns:       []string{"consumables"},
	}, now)
	require.NoError(t, err)

	assert.NotEmpty(t, receipt.ReceiptID)
	assert.Equal(t, "INR", receipt.Currency)
	assert.Equal(t, receipt.AmountPaid, receipt.Policy.Premium)
	assert.Equal(t, []string{"consumables"}, receipt.Policy.AddOns)
	assert.Equal(t, receipt.Policy.StartDate.AddDate(2, 0, 0), receipt.Policy.ExpiryDate)
	wantStart := before.Policy.ExpiryDate
	if wantStart.Before(day(now)) {
		wantStart = day(now)
	}
	assert.Equal(t, wantStart, receipt.Policy.StartDate)
	assert.Equal(t, before.Policy.Insurer, receipt.Policy.Insurer)
}

func TestRenewThirdPartyDropsAddOns(t *testing.T) {
	receipt, err := Renew(id.MustRegistrationNumber("DL01AB1234"), models.RenewalRequest{
		PlanType:  models.PlanThirdParty,
		TermYears: 1,
		AddOns:    []string{"consumables"},
	}, now)
	require.NoError(t, err)
	assert.Empty(t, receipt.Policy.AddOns)
	assert.Equal(t, int64(3_416), receipt.AmountPaid)
}

func TestRenewDeclined(t *testing.T) {
	_, err := Renew(id.MustRegistrationNumber("MH12AB8888"), models.RenewalRequest{PlanType: models.PlanComprehensive, TermYears: 1}, now)
	assert.Equal(t, providers.ErrorRejected, providers.GetCategory(err))
}

func TestRenewOutsideWindowIsRefused(t *testing.T) {
	reg := id.MustRegistrationNumber("MH12AB1234")
	report, err := Generate(reg, now)
	require.NoError(t, err)
	require.False(t, report.Policy.Renewable(now))

	_, err = Renew(reg, models.RenewalRequest{PlanType: models.PlanComprehensive, TermYears: 1}, now)
	assert.Equal(t, providers.ErrorRejected, providers.GetCategory(err))

	var pe *providers.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, models.NotRenewableMessage, pe.Message)
}

func TestQuote(t *testing.T) {
	policy := models.Policy{IDV: 500_000, NCBPercent: 20}
	assert.Equal(t, int64(12_000), Quote(policy, models.PlanComprehensive, 1, nil))
	assert.Equal(t, int64(2*(12_000+1_500)), Quote(policy, models.PlanComprehensive, 2, []string{"consumables"}))
	assert.Equal(t, int64(3_416), Quote(policy, models.PlanThirdParty, 0, nil))
}

func TestMockHonoursDeadline(t *testing.T) {
	m := NewMock(time.Second).WithClock(func() time.Time { return now })
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.SearchInsurance(ctx, id.MustRegistrationNumber("MH12AB1234"))
	assert.Equal(t, providers.ErrorTimeout, providers.GetCategory(err))
}

func TestMockSearchAndRenew(t *testing.T) {
	m := NewMock(0).WithClock(func() time.Time { return now })
	reg := id.MustRegistrationNumber("MH12AB1215")

	report, err := m.SearchInsurance(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, now, report.FetchedAt)

	receipt, err := m.RenewPolicy(context.Background(), reg, models.RenewalRequest{PlanType: models.PlanComprehensive, TermYears: 1})
	require.NoError(t, err)
	assert.Equal(t, reg.String(), receipt.Registration)
}

func TestHTTPFetcher(t *testing.T) {
	reg := id.MustRegistrationNumber("MH12AB1042")
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+SearchPath(reg), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		report, _ := Generate(reg, now)
		_ = json.NewEncoder(w).Encode(report)
	})
	mux.HandleFunc("POST "+RenewPath(reg), func(w http.ResponseWriter, r *http.Request) {
		var req models.RenewalRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		receipt, _ := Renew(reg, req, now)
		_ = json.NewEncoder(w).Encode(receipt)
	})
	mux.HandleFunc("GET "+SearchPath(id.MustRegistrationNumber("MH12AB0000")), func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := NewHTTP(providers.NewHTTPAdapter(providers.HTTPAdapterConfig{
		ID:         "insurance-api",
		BaseURL:    server.URL,
		APIKey:     "secret",
		HTTPClient: server.Client(),
	}))

	report, err := f.SearchInsurance(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, reg.String(), report.Registration)

	receipt, err := f.RenewPolicy(context.Background(), reg, models.RenewalRequest{Registration: reg.String(), PlanType: models.PlanThirdParty, TermYears: 1})
	require.NoError(t, err)
	assert.Equal(t, models.PlanThirdParty, receipt.Policy.PlanType)

	_, err = f.SearchInsurance(context.Background(), id.MustRegistrationNumber("MH12AB0000"))
	assert.Equal(t, providers.ErrorNotFound, providers.GetCategory(err))
}
