package fetcher

import (
	"context"
	"net/url"

	"motorhub/internal/challan/models"
	"motorhub/internal/lookup/providers"
	id "motorhub/pkg/domain"
)

// HTTP queries the e-challan API.
type HTTP struct {
	adapter *providers.HTTPAdapter
}

func NewHTTP(adapter *providers.HTTPAdapter) *HTTP {
	return &HTTP{adapter: adapter}
}

func (f *HTTP) SearchChallan(ctx context.Context, reg id.RegistrationNumber) (models.Report, error) {
	var report models.Report
	if err := f.adapter.GetJSON(ctx, SearchPath(reg), &report); err != nil {
		return models.Report{}, err
	}
	return report.Recompute(), nil
}

func (f *HTTP) PayChallan(ctx context.Context, reg id.RegistrationNumber, req models.PaymentRequest) (models.PaymentReceipt, error) {
	var receipt models.PaymentReceipt
	if err := f.adapter.PostJSON(ctx, PayPath(reg), req, &receipt); err != nil {
		return models.PaymentReceipt{}, err
	}
	return receipt, nil
}

func SearchPath(reg id.RegistrationNumber) string {
	return "/v1/challans/" + url.PathEscape(reg.String())
}

func PayPath(reg id.RegistrationNumber) string {
	return SearchPath(reg) + "/pay"
}
