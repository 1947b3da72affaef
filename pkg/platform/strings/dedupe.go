// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrimLower trims and lowercases each element, dropping empties and
// repeats. Order of first occurrence is preserved; nil stays nil.
//
// Example:
//
//	DedupeAndTrimLower([]string{"  Zero_Depreciation ", "consumables", "zero_depreciation"})
//	// Returns: []string{"zero_depreciation", "consumables"}
func DedupeAndTrimLower(values []string) []string {
	if values == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}
