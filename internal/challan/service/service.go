// Package service implements challan lookups and online payment.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"motorhub/internal/challan/models"
	lookup "motorhub/internal/lookup/service"
	"motorhub/internal/lookup/tracer"
	id "motorhub/pkg/domain"
	dErrors "motorhub/pkg/domain-errors"
	"motorhub/pkg/platform/events"
	"motorhub/pkg/requestcontext"
)

const Domain = "challan"

var Messages = lookup.Messages{
	NotFound:    "no challan records found for this vehicle",
	Unavailable: "the e-challan service is temporarily unavailable, please try again later",
}

// Fetcher is the e-challan upstream.
type Fetcher interface {
	SearchChallan(ctx context.Context, reg id.RegistrationNumber) (models.Report, error)
	PayChallan(ctx context.Context, reg id.RegistrationNumber, req models.PaymentRequest) (models.PaymentReceipt, error)
}

type Service struct {
	*lookup.Service[models.Report]
	fetcher Fetcher
}

func New(fetcher Fetcher, opts ...lookup.Option) *Service {
	opts = append([]lookup.Option{lookup.WithMessages(Messages)}, opts...)
	return &Service{
		Service: lookup.New(Domain, fetcher.SearchChallan, opts...),
		fetcher: fetcher,
	}
}

// PayChallan pays pending challans of a vehicle the owner has looked up or
// saved. Every challan must be pending in the owner's copy of the report.
// Paid challans are marked in the current result and in any saved copy.
func (s *Service) PayChallan(ctx context.Context, owner id.UserID, req models.PaymentRequest) (_ *models.PaymentResponse, err error) {
	reg, err := id.ParseRegistrationNumber(req.Registration)
	if err != nil {
		return nil, err
	}

	ctx, span := s.Tracer().Start(ctx, tracer.SpanPay,
		tracer.String(tracer.AttrDomain, Domain),
		tracer.String(tracer.AttrRegistration, reg.Redacted()),
		tracer.Int("challan.count", len(req.ChallanIDs)),
	)
	defer func() { span.End(err) }()

	unlock := s.LockRegistration(owner, reg)
	defer unlock()

	report, ok := s.Find(owner, reg.String())
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "search for this vehicle before paying its challans")
	}
	var expected int64
	for _, cid := range req.ChallanIDs {
		c, ok := report.Find(cid)
		if !ok {
			return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("challan %s not found for this vehicle", cid))
		}
		if !c.Payable() {
			return nil, dErrors.New(dErrors.CodeConflict, fmt.Sprintf("challan %s is %s and cannot be paid", cid, strings.ReplaceAll(string(c.Status), "_", " ")))
		}
		expected += c.Amount
	}

	req.Registration = reg.String()
	receipt, err := s.fetcher.PayChallan(ctx, reg, req)
	if err == nil && (receipt.Registration != reg.String() || receipt.Amount != expected) {
		s.Logger().ErrorContext(ctx, "payment receipt does not match the request",
			"registration", reg.Redacted(),
			"expected_amount", expected,
			"receipt_amount", receipt.Amount,
			"receipt_id", receipt.ReceiptID,
		)
		err = dErrors.New(dErrors.CodeUnavailable, "payment could not be confirmed, please contact support before retrying")
	}
	if err != nil {
		translated := lookup.TranslateError(err, s.Messages())
		s.recordPayment(ctx, owner, reg, lookup.Outcome(translated), nil)
		s.Logger().WarnContext(ctx, "challan payment failed",
			"registration", reg.Redacted(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, translated
	}

	paid := report.MarkPaid(req.ChallanIDs, receipt.PaidAt)
	paid.FetchedAt = requestcontext.Now(ctx)
	s.Refresh(owner, paid)
	s.recordPayment(ctx, owner, reg, lookup.Outcome(nil), map[string]string{
		"receipt_id":      receipt.ReceiptID,
		"transaction_ref": receipt.TransactionRef,
		"challan_count":   strconv.Itoa(len(req.ChallanIDs)),
		"amount":          strconv.FormatInt(receipt.Amount, 10),
		"payment_method":  string(receipt.Method),
	})
	s.Logger().InfoContext(ctx, "challans paid",
		"registration", reg.Redacted(),
		"receipt_id", receipt.ReceiptID,
		"count", len(req.ChallanIDs),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.PaymentResponse{Receipt: receipt, Report: paid}, nil
}

func (s *Service) recordPayment(ctx context.Context, owner id.UserID, reg id.RegistrationNumber, outcome string, attrs map[string]string) {
	if m := s.Metrics(); m != nil {
		m.RecordTransaction(Domain, outcome)
	}
	s.Emit(ctx, owner, events.TypeChallanPaid, reg, outcome, attrs)
}
