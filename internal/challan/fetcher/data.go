package fetcher

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"motorhub/internal/challan/models"
	"motorhub/internal/lookup/providers"
	id "motorhub/pkg/domain"
)

var offences = []struct {
	offence string
	section string
	fine    int64
}{
	{"Over-speeding", "183", 2_000},
	{"Jumping red light", "184", 5_000},
	{"Riding without helmet", "194D", 1_000},
	{"Driving without seat belt", "194B", 1_000},
	{"Using mobile phone while driving", "184", 5_000},
	{"No valid PUC certificate", "190(2)", 10_000},
	{"Parking in no-parking zone", "177", 500},
	{"Driving without licence", "181", 5_000},
}

var locations = []string{
	"Ring Road Junction",
	"MG Road Signal",
	"Airport Expressway",
	"Station Road",
	"Outer Ring Road, Toll Plaza",
	"Market Chowk",
}

var authorities = map[string]string{
	"MH": "Maharashtra Traffic Police",
	"DL": "Delhi Traffic Police",
	"KA": "Karnataka State Police",
	"TN": "Greater Chennai Traffic Police",
	"UP": "Uttar Pradesh Traffic Police",
}

func hash(parts ...string) uint32 {
	h := fnv.New32a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
	}
	return h.Sum32()
}

func authority(reg id.RegistrationNumber) string {
	if a, ok := authorities[reg.String()[:2]]; ok {
		return a
	}
	return "State Traffic Police"
}

func mockFailure(reg id.RegistrationNumber) error {
	switch {
	case strings.HasSuffix(reg.String(), "0000"):
		return providers.NewProviderError(providers.ErrorNotFound, MockProviderID, "vehicle not found in e-challan records", nil)
	case strings.HasSuffix(reg.String(), "9999"):
		return providers.NewProviderError(providers.ErrorProviderOutage, MockProviderID, "e-challan service unavailable", nil)
	}
	return nil
}

// Generate builds the deterministic challan history for reg as of now.
func Generate(reg id.RegistrationNumber, now time.Time) (models.Report, error) {
	if err := mockFailure(reg); err != nil {
		return models.Report{}, err
	}

	count := int(hash(reg.String()) % 5)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	challans := make([]models.Challan, 0, count)
	for i := range count {
		h := hash(reg.String(), strconv.Itoa(i))
		o := offences[h%uint32(len(offences))]
		issued := today.AddDate(0, 0, -int(1+(h>>5)%300)).Add(time.Duration(8+(h>>3)%12) * time.Hour)

		c := models.Challan{
			ID:        fmt.Sprintf("%s%s%06d", reg.String()[:2], issued.Format("060102"), h%1_000_000),
			Offence:   o.offence,
			Section:   "MVA " + o.section,
			Location:  locations[(h>>7)%uint32(len(locations))],
			Authority: authority(reg),
			IssuedAt:  issued,
			Amount:    o.fine,
			Status:    models.StatusPending,
		}
		switch {
		case (h>>11)%7 == 0:
			paidAt := issued.AddDate(0, 0, 3)
			c.Status = models.StatusPaid
			c.PaidAt = &paidAt
		case (h>>13)%9 == 0:
			c.Status = models.StatusInCourt
		}
		challans = append(challans, c)
	}

	return models.Report{
		Registration: reg.String(),
		Challans:     challans,
		FetchedAt:    now,
	}.Recompute(), nil
}

// Pay simulates the payment gateway settling challans of reg. Numbers
// ending in 8888 have the payment declined.
func Pay(reg id.RegistrationNumber, req models.PaymentRequest, now time.Time) (models.PaymentReceipt, error) {
	report, err := Generate(reg, now)
	if err != nil {
		return models.PaymentReceipt{}, err
	}
	if strings.HasSuffix(reg.String(), "8888") {
		return models.PaymentReceipt{}, providers.NewProviderError(providers.ErrorRejected, MockProviderID, "payment declined by the issuing bank", nil)
	}

	var total int64
	for _, cid := range req.ChallanIDs {
		c, ok := report.Find(cid)
		if !ok {
			return models.PaymentReceipt{}, providers.NewProviderError(providers.ErrorRejected, MockProviderID,
				fmt.Sprintf("challan %s does not belong to this vehicle", cid), nil)
		}
		if !c.Payable() {
			return models.PaymentReceipt{}, providers.NewProviderError(providers.ErrorRejected, MockProviderID,
				fmt.Sprintf("challan %s cannot be paid online", cid), nil)
		}
		total += c.Amount
	}

	return models.PaymentReceipt{
		ReceiptID:      uuid.NewString(),
		TransactionRef: fmt.Sprintf("TXN%d%04d", now.Unix(), hash(reg.String(), now.String())%10_000),
		Registration:   reg.String(),
		ChallanIDs:     append([]string(nil), req.ChallanIDs...),
		Amount:         total,
		Currency:       "INR",
		Method:         req.Method,
		PaidAt:         now,
	}, nil
}
