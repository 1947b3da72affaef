package models

import (
	"time"

	id "motorhub/pkg/domain"
	"motorhub/pkg/validation"
)

type ChallanStatus string

const (
	StatusPending ChallanStatus = "pending"
	StatusPaid    ChallanStatus = "paid"
	// StatusInCourt challans are settled through the virtual court and cannot be paid online.
	StatusInCourt ChallanStatus = "in_court"
)

type PaymentMethod string

const (
	MethodUPI        PaymentMethod = "upi"
	MethodCard       PaymentMethod = "card"
	MethodNetBanking PaymentMethod = "netbanking"
)

type Challan struct {
	ID        string        `json:"challan_id"`
	Offence   string        `json:"offence"`
	Section   string        `json:"section"`
	Location  string        `json:"location"`
	Authority string        `json:"authority"`
	IssuedAt  time.Time     `json:"issued_at"`
	Amount    int64         `json:"amount"`
	Status    ChallanStatus `json:"status"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
}

func (c Challan) Payable() bool { return c.Status == StatusPending }

// Report is the challan lookup result for one vehicle. The totals are
// derived from Challans by Recompute.
type Report struct {
	Registration  string    `json:"registration_number"`
	Challans      []Challan `json:"challans"`
	PendingCount  int       `json:"pending_count"`
	PendingAmount int64     `json:"pending_amount"`
	PaidAmount    int64     `json:"paid_amount"`
	FetchedAt     time.Time `json:"fetched_at"`
}

func (r Report) Key() string { return r.Registration }

// Recompute returns a copy of r with its totals derived from the challans.
func (r Report) Recompute() Report {
	r.PendingCount, r.PendingAmount, r.PaidAmount = 0, 0, 0
	for _, c := range r.Challans {
		switch c.Status {
		case StatusPending:
			r.PendingCount++
			r.PendingAmount += c.Amount
		case StatusPaid:
			r.PaidAmount += c.Amount
		}
	}
	return r
}

// Find returns the challan with the given ID.
func (r Report) Find(challanID string) (Challan, bool) {
	for _, c := range r.Challans {
		if c.ID == challanID {
			return c, true
		}
	}
	return Challan{}, false
}

// MarkPaid returns a copy of r with the given challans paid at paidAt. The
// receiver's challan slice is not modified.
func (r Report) MarkPaid(challanIDs []string, paidAt time.Time) Report {
	ids := make(map[string]struct{}, len(challanIDs))
	for _, cid := range challanIDs {
		ids[cid] = struct{}{}
	}
	challans := make([]Challan, len(r.Challans))
	for i, c := range r.Challans {
		if _, ok := ids[c.ID]; ok && c.Status == StatusPending {
			at := paidAt
			c.Status = StatusPaid
			c.PaidAt = &at
		}
		challans[i] = c
	}
	r.Challans = challans
	return r.Recompute()
}

type PaymentRequest struct {
	Registration string        `json:"registration" validate:"required,registration"`
	ChallanIDs   []string      `json:"challan_ids" validate:"required,min=1,max=20,unique,dive,notblank"`
	Method       PaymentMethod `json:"payment_method" validate:"required,oneof=upi card netbanking"`
}

func (r *PaymentRequest) Normalize() {
	r.Registration = id.NormalizeRegistration(r.Registration)
}

func (r *PaymentRequest) Validate() error {
	return validation.Validate(r)
}

// PaymentReceipt is returned by the payment gateway for a settled payment.
type PaymentReceipt struct {
	ReceiptID      string        `json:"receipt_id"`
	TransactionRef string        `json:"transaction_ref"`
	Registration   string        `json:"registration_number"`
	ChallanIDs     []string      `json:"challan_ids"`
	Amount         int64         `json:"amount"`
	Currency       string        `json:"currency"`
	Method         PaymentMethod `json:"payment_method"`
	PaidAt         time.Time     `json:"paid_at"`
}

type PaymentResponse struct {
	Receipt PaymentReceipt `json:"receipt"`
	Report  Report         `json:"report"`
}
