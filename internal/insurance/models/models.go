package models

import (
	"strings"
	"time"

	id "motorhub/pkg/domain"
	pstrings "motorhub/pkg/platform/strings"
	"motorhub/pkg/validation"
)

type PolicyStatus string

const (
	PolicyActive       PolicyStatus = "active"
	PolicyExpiringSoon PolicyStatus = "expiring_soon"
	PolicyExpired      PolicyStatus = "expired"
)

type PlanType string

const (
	PlanComprehensive PlanType = "comprehensive"
	PlanThirdParty    PlanType = "third_party"
)

const (
	// ExpiringSoonWindow is how close to expiry a policy is flagged.
	ExpiringSoonWindow = 30 * 24 * time.Hour
	// RenewalWindow is how early before expiry a policy may be renewed. It
	// matches ExpiringSoonWindow: only expiring or expired policies renew.
	RenewalWindow = ExpiringSoonWindow
)

// NotRenewableMessage is shown for a renewal outside the window.
const NotRenewableMessage = "policy can only be renewed once it has expired or expires within 30 days"

type Vehicle struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	FuelType     string `json:"fuel_type"`
	RegisteredOn string `json:"registered_on"`
}

type Policy struct {
	PolicyNumber string       `json:"policy_number"`
	Insurer      string       `json:"insurer"`
	PlanType     PlanType     `json:"plan_type"`
	Status       PolicyStatus `json:"status"`
	StartDate    time.Time    `json:"start_date"`
	ExpiryDate   time.Time    `json:"expiry_date"`
	Premium      int64        `json:"premium"`
	IDV          int64        `json:"idv"`
	NCBPercent   int          `json:"ncb_percent"`
	AddOns       []string     `json:"add_ons"`
}

// StatusAt derives the policy status at now.
func (p Policy) StatusAt(now time.Time) PolicyStatus {
	switch {
	case !now.Before(p.ExpiryDate):
		return PolicyExpired
	case p.ExpiryDate.Sub(now) <= ExpiringSoonWindow:
		return PolicyExpiringSoon
	default:
		return PolicyActive
	}
}

// Renewable reports whether the policy is inside the renewal window or has
// already expired.
func (p Policy) Renewable(now time.Time) bool {
	return p.ExpiryDate.Sub(now) <= RenewalWindow
}

// Report is the insurance lookup result for one vehicle.
type Report struct {
	Registration string    `json:"registration_number"`
	OwnerName    string    `json:"owner_name"`
	Vehicle      Vehicle   `json:"vehicle"`
	Policy       Policy    `json:"policy"`
	FetchedAt    time.Time `json:"fetched_at"`
}

func (r Report) Key() string { return r.Registration }

// WithPolicy returns a copy of r carrying p.
func (r Report) WithPolicy(p Policy, at time.Time) Report {
	r.Policy = p
	r.Policy.AddOns = append([]string(nil), p.AddOns...)
	r.FetchedAt = at
	return r
}

// Add-on covers offered at renewal.
var AddOns = []string{
	"zero_depreciation",
	"roadside_assistance",
	"engine_protection",
	"return_to_invoice",
	"consumables",
}

type RenewalRequest struct {
	Registration string   `json:"registration" validate:"required,registration"`
	PlanType     PlanType `json:"plan_type" validate:"required,oneof=comprehensive third_party"`
	TermYears    int      `json:"term_years" validate:"required,min=1,max=3"`
	AddOns       []string `json:"add_ons" validate:"omitempty,unique,dive,oneof=zero_depreciation roadside_assistance engine_protection return_to_invoice consumables"`
}

func (r *RenewalRequest) Normalize() {
	r.Registration = id.NormalizeRegistration(r.Registration)
	r.PlanType = PlanType(strings.ToLower(strings.TrimSpace(string(r.PlanType))))
	r.AddOns = pstrings.DedupeAndTrimLower(r.AddOns)
	if r.TermYears == 0 {
		r.TermYears = 1
	}
}

func (r *RenewalRequest) Validate() error {
	return validation.Validate(r)
}

// RenewalReceipt is returned by the insurer once the renewal is paid for.
type RenewalReceipt struct {
	ReceiptID    string    `json:"receipt_id"`
	Registration string    `json:"registration_number"`
	AmountPaid   int64     `json:"amount_paid"`
	Currency     string    `json:"currency"`
	Policy       Policy    `json:"policy"`
	RenewedAt    time.Time `json:"renewed_at"`
}

type RenewalResponse struct {
	Receipt RenewalReceipt `json:"receipt"`
	Report  Report         `json:"report"`
}
