package fetcher

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"

	"motorhub/internal/insurance/models"
	"motorhub/internal/lookup/providers"
	id "motorhub/pkg/domain"
)

var insurers = []struct {
	name string
	code string
}{
	{"ICICI Lombard", "ICL"},
	{"HDFC ERGO", "HDE"},
	{"Bajaj Allianz", "BJA"},
	{"Tata AIG", "TAG"},
	{"New India Assurance", "NIA"},
	{"Go Digit", "GDG"},
}

var vehicles = []models.Vehicle{
	{Make: "Maruti Suzuki", Model: "Swift", FuelType: "petrol"},
	{Make: "Hyundai", Model: "Creta", FuelType: "diesel"},
	{Make: "Tata", Model: "Nexon EV", FuelType: "electric"},
	{Make: "Mahindra", Model: "XUV700", FuelType: "diesel"},
	{Make: "Honda", Model: "City", FuelType: "petrol"},
	{Make: "Toyota", Model: "Innova Crysta", FuelType: "diesel"},
}

var owners = []string{"R**** S*****", "A**** K****", "P***** M****", "S**** R***", "V***** N***"}

var ncbSteps = []int{0, 20, 25, 35, 45, 50}

func seed(reg id.RegistrationNumber) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(reg.String()))
	return h.Sum32()
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mockFailure returns the simulated failure for reg, if any: numbers ending in
// 0000 have no policy and numbers ending in 9999 hit an insurer outage.
func mockFailure(reg id.RegistrationNumber) error {
	switch {
	case strings.HasSuffix(reg.String(), "0000"):
		return providers.NewProviderError(providers.ErrorNotFound, MockProviderID, "no policy on record", nil)
	case strings.HasSuffix(reg.String(), "9999"):
		return providers.NewProviderError(providers.ErrorProviderOutage, MockProviderID, "insurer systems unavailable", nil)
	}
	return nil
}

// Generate builds the deterministic report for reg as of now. The same
// registration always yields the same vehicle and policy on a given day.
func Generate(reg id.RegistrationNumber, now time.Time) (models.Report, error) {
	if err := mockFailure(reg); err != nil {
		return models.Report{}, err
	}

	h := seed(reg)
	today := day(now)
	insurer := insurers[h%uint32(len(insurers))]
	vehicle := vehicles[(h>>3)%uint32(len(vehicles))]
	vehicle.RegisteredOn = today.AddDate(-int(1+(h>>6)%9), -int((h>>10)%12), 0).Format(time.DateOnly)

	expiry := today.AddDate(0, 0, int((h>>4)%420)-60)
	policy := models.Policy{
		PolicyNumber: fmt.Sprintf("%s-%08d", insurer.code, h%100_000_000),
		Insurer:      insurer.name,
		PlanType:     models.PlanComprehensive,
		StartDate:    expiry.AddDate(-1, 0, 0),
		ExpiryDate:   expiry,
		IDV:          int64(300_000 + ((h>>8)%900)*1_000),
		NCBPercent:   ncbSteps[(h>>12)%uint32(len(ncbSteps))],
		AddOns:       []string{},
	}
	if (h>>16)%4 == 0 {
		policy.PlanType = models.PlanThirdParty
	} else if (h>>18)%2 == 0 {
		policy.AddOns = []string{"zero_depreciation", "roadside_assistance"}
	}
	policy.Premium = Quote(policy, policy.PlanType, 1, policy.AddOns)
	policy.Status = policy.StatusAt(today)

	return models.Report{
		Registration: reg.String(),
		OwnerName:    owners[(h>>20)%uint32(len(owners))],
		Vehicle:      vehicle,
		Policy:       policy,
		FetchedAt:    now,
	}, nil
}

// Quote prices a renewal of current for the given plan, term and add-ons, in rupees.
func Quote(current models.Policy, plan models.PlanType, termYears int, addOns []string) int64 {
	annual := current.IDV * 3 / 100
	if plan == models.PlanThirdParty {
		annual = 3_416
	} else {
		annual -= annual * int64(current.NCBPercent) / 100
		annual += int64(len(addOns)) * 1_500
	}
	if termYears < 1 {
		termYears = 1
	}
	return annual * int64(termYears)
}

// Renew simulates the insurer issuing a renewed policy for reg. Numbers
// ending in 8888 have the payment declined, and a policy outside the renewal
// window is refused.
func Renew(reg id.RegistrationNumber, req models.RenewalRequest, now time.Time) (models.RenewalReceipt, error) {
	report, err := Generate(reg, now)
	if err != nil {
		return models.RenewalReceipt{}, err
	}
	if strings.HasSuffix(reg.String(), "8888") {
		return models.RenewalReceipt{}, providers.NewProviderError(providers.ErrorRejected, MockProviderID, "payment declined by the issuing bank", nil)
	}
	if !report.Policy.Renewable(now) {
		return models.RenewalReceipt{}, providers.NewProviderError(providers.ErrorRejected, MockProviderID, models.NotRenewableMessage, nil)
	}

	today := day(now)
	start := report.Policy.ExpiryDate
	if start.Before(today) {
		start = today
	}
	addOns := append([]string{}, req.AddOns...)
	if req.PlanType == models.PlanThirdParty {
		addOns = []string{}
	}

	premium := Quote(report.Policy, req.PlanType, req.TermYears, addOns)
	policy := report.Policy
	policy.PolicyNumber = fmt.Sprintf("%s-%08d", policy.PolicyNumber[:3], (seed(reg)+uint32(now.Unix()))%100_000_000)
	policy.PlanType = req.PlanType
	policy.StartDate = start
	policy.ExpiryDate = start.AddDate(req.TermYears, 0, 0)
	policy.Premium = premium
	policy.AddOns = addOns
	policy.Status = policy.StatusAt(today)

	return models.RenewalReceipt{
		ReceiptID:    uuid.NewString(),
		Registration: reg.String(),
		AmountPaid:   premium,
		Currency:     "INR",
		Policy:       policy,
		RenewedAt:    now,
	}, nil
}
