// Package service implements insurance lookups and policy renewal.
package service

import (
	"context"
	"strconv"

	"motorhub/internal/insurance/models"
	lookup "motorhub/internal/lookup/service"
	"motorhub/internal/lookup/tracer"
	id "motorhub/pkg/domain"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/platform/events"
	"motorhub/pkg/requestcontext"
)

const Domain = "insurance"

// Messages are the insurance-specific texts shown for failed lookups.
var Messages = lookup.Messages{
	NotFound:    "no insurance policy found for this vehicle",
	Unavailable: "insurance records are temporarily unavailable, please try again later",
}

// Fetcher is the insurer upstream.
type Fetcher interface {
	SearchInsurance(ctx context.Context, reg id.RegistrationNumber) (models.Report, error)
	RenewPolicy(ctx context.Context, reg id.RegistrationNumber, req models.RenewalRequest) (models.RenewalReceipt, error)
}

// Service is the insurance lookup slice plus renewals.
type Service struct {
	*lookup.Service[models.Report]
	fetcher Fetcher
}

func New(fetcher Fetcher, opts ...lookup.Option) *Service {
	opts = append([]lookup.Option{lookup.WithMessages(Messages)}, opts...)
	return &Service{
		Service: lookup.New(Domain, fetcher.SearchInsurance, opts...),
		fetcher: fetcher,
	}
}

// RenewPolicy renews the policy of a vehicle the owner has looked up or
// saved. On success the renewed policy replaces the one in the current result
// and in any saved copy, without moving the saved report.
func (s *Service) RenewPolicy(ctx context.Context, owner id.UserID, req models.RenewalRequest) (_ *models.RenewalResponse, err error) {
	reg, err := id.ParseRegistrationNumber(req.Registration)
	if err != nil {
		return nil, err
	}

	ctx, span := s.Tracer().Start(ctx, tracer.SpanRenew,
		tracer.String(tracer.AttrDomain, Domain),
		tracer.String(tracer.AttrRegistration, reg.Redacted()),
	)
	defer func() { span.End(err) }()

	unlock := s.LockRegistration(owner, reg)
	defer unlock()

	report, ok := s.Find(owner, reg.String())
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "search for this vehicle before renewing its policy")
	}
	now := requestcontext.Now(ctx)
	if !report.Policy.Renewable(now) {
		return nil, dErrors.New(dErrors.CodeConflict, models.NotRenewableMessage)
	}

	req.Registration = reg.String()
	receipt, err := s.fetcher.RenewPolicy(ctx, reg, req)
	if err == nil && receipt.Registration != reg.String() {
		err = dErrors.New(dErrors.CodeUnavailable, s.Messages().Unavailable)
	}
	if err != nil {
		translated := lookup.TranslateError(err, s.Messages())
		s.recordRenewal(ctx, owner, reg, lookup.Outcome(translated), nil)
		s.Logger().WarnContext(ctx, "policy renewal failed",
			"registration", reg.Redacted(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, translated
	}

	renewed := report.WithPolicy(receipt.Policy, now)
	s.Refresh(owner, renewed)
	s.recordRenewal(ctx, owner, reg, lookup.Outcome(nil), map[string]string{
		"receipt_id":    receipt.ReceiptID,
		"policy_number": receipt.Policy.PolicyNumber,
		"plan_type":     string(receipt.Policy.PlanType),
		"term_years":    strconv.Itoa(req.TermYears),
		"amount_paid":   strconv.FormatInt(receipt.AmountPaid, 10),
	})
	s.Logger().InfoContext(ctx, "policy renewed",
		"registration", reg.Redacted(),
		"receipt_id", receipt.ReceiptID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.RenewalResponse{Receipt: receipt, Report: renewed}, nil
}

func (s *Service) recordRenewal(ctx context.Context, owner id.UserID, reg id.RegistrationNumber, outcome string, attrs map[string]string) {
	if m := s.Metrics(); m != nil {
		m.RecordTransaction(Domain, outcome)
	}
	s.Emit(ctx, owner, events.TypePolicyRenewed, reg, outcome, attrs)
}
