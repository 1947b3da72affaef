package fetcher

import (
	"context"
	"time"

	"motorhub/internal/challan/models"
	"motorhub/internal/lookup/providers"
	id "motorhub/pkg/domain"
)

const MockProviderID = "challan-mock"

// Mock serves generated challan data after a simulated delay.
type Mock struct {
	latency time.Duration
	now     func() time.Time
}

func NewMock(latency time.Duration) *Mock {
	return &Mock{latency: latency, now: time.Now}
}

// WithClock replaces the mock's time source.
func (m *Mock) WithClock(now func() time.Time) *Mock {
	m.now = now
	return m
}

func (m *Mock) SearchChallan(ctx context.Context, reg id.RegistrationNumber) (models.Report, error) {
	if err := providers.Sleep(ctx, MockProviderID, m.latency); err != nil {
		return models.Report{}, err
	}
	return Generate(reg, m.now())
}

func (m *Mock) PayChallan(ctx context.Context, reg id.RegistrationNumber, req models.PaymentRequest) (models.PaymentReceipt, error) {
	if err := providers.Sleep(ctx, MockProviderID, m.latency); err != nil {
		return models.PaymentReceipt{}, err
	}
	return Pay(reg, req, m.now())
}
