package domain

import (
	"regexp"
	"strings"

	dErrors "motorhub/pkg/domain-errors"
)

const (
	minRegistrationLength = 6
	maxRegistrationLength = 11
)

var (
	// State series, e.g. MH12AB1234, DL1C1234, KA05MX0001.
	stateSeriesPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{0,3}[0-9]{4}$`)
	// Bharat series, e.g. 22BH1234AB.
	bharatSeriesPattern = regexp.MustCompile(`^[0-9]{2}BH[0-9]{4}[A-Z]{1,2}$`)
)

// RegistrationNumber is a normalized vehicle registration number: upper-case,
// with spaces and hyphens removed.
//
// Invariants:
//   - length between 6 and 11 characters
//   - matches the state series or Bharat series format
type RegistrationNumber struct {
	value string
}

// NormalizeRegistration upper-cases s and strips the separators users commonly
// type ("MH 12-AB 1234"). It performs no format validation.
func NormalizeRegistration(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}

// ParseRegistrationNumber validates and normalizes a registration number.
func ParseRegistrationNumber(s string) (RegistrationNumber, error) {
	normalized := NormalizeRegistration(s)
	if normalized == "" {
		return RegistrationNumber{}, dErrors.New(dErrors.CodeValidation, "registration number is required")
	}
	if len(normalized) < minRegistrationLength || len(normalized) > maxRegistrationLength {
		return RegistrationNumber{}, dErrors.New(dErrors.CodeValidation, "registration number must be 6 to 11 characters")
	}
	if !IsRegistrationFormat(normalized) {
		return RegistrationNumber{}, dErrors.New(dErrors.CodeValidation, "invalid registration number format")
	}
	return RegistrationNumber{value: normalized}, nil
}

// MustRegistrationNumber parses s, panicking if invalid. Intended for tests and fixtures.
func MustRegistrationNumber(s string) RegistrationNumber {
	reg, err := ParseRegistrationNumber(s)
	if err != nil {
		panic(err)
	}
	return reg
}

// IsRegistrationFormat reports whether an already-normalized value matches a
// supported registration series.
func IsRegistrationFormat(normalized string) bool {
	return stateSeriesPattern.MatchString(normalized) || bharatSeriesPattern.MatchString(normalized)
}

func (r RegistrationNumber) String() string { return r.value }

func (r RegistrationNumber) IsZero() bool { return r.value == "" }

// Redacted returns a form safe for logging: only the last four characters are kept.
func (r RegistrationNumber) Redacted() string {
	if len(r.value) <= 4 {
		return "****"
	}
	return "****" + r.value[len(r.value)-4:]
}
