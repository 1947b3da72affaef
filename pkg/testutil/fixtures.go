package testutil

import (
	"fmt"

	"github.com/google/uuid"

	id "motorhub/pkg/domain"
)

// TestIDs provides fixed IDs for deterministic test data.
var TestIDs = struct {
	UserID1 id.UserID
	UserID2 id.UserID
}{
	UserID1: id.UserID(uuid.MustParse("11111111-1111-1111-1111-111111111111")),
	UserID2: id.UserID(uuid.MustParse("22222222-2222-2222-2222-222222222222")),
}

// Registrations returns n distinct, valid state-series registration numbers.
func Registrations(n int) []string {
	out := make([]string, n)
	for i := range n {
		out[i] = fmt.Sprintf("MH%02dAB%04d", 1+i%99, 1000+i)
	}
	return out
}
