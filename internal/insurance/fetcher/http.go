package fetcher

import (
	"context"
	"net/url"

	"motorhub/internal/insurance/models"
	"motorhub/internal/lookup/providers"
	id "motorhub/pkg/domain"
)

// Upstream paths, relative to the insurer API base URL.
const (
	searchPath = "/v1/insurance/"
	renewPath  = "/renew"
)

// HTTP queries the insurance API.
type HTTP struct {
	adapter *providers.HTTPAdapter
}

func NewHTTP(adapter *providers.HTTPAdapter) *HTTP {
	return &HTTP{adapter: adapter}
}

func (f *HTTP) SearchInsurance(ctx context.Context, reg id.RegistrationNumber) (models.Report, error) {
	var report models.Report
	if err := f.adapter.GetJSON(ctx, SearchPath(reg), &report); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (f *HTTP) RenewPolicy(ctx context.Context, reg id.RegistrationNumber, req models.RenewalRequest) (models.RenewalReceipt, error) {
	var receipt models.RenewalReceipt
	if err := f.adapter.PostJSON(ctx, RenewPath(reg), req, &receipt); err != nil {
		return models.RenewalReceipt{}, err
	}
	return receipt, nil
}

func SearchPath(reg id.RegistrationNumber) string {
	return searchPath + url.PathEscape(reg.String())
}

func RenewPath(reg id.RegistrationNumber) string {
	return SearchPath(reg) + renewPath
}
