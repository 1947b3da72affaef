package validation

import (
	"fmt"

	dErrors "motorhub/pkg/domain-errors"
)

// Notification data payload limits. Struct tags cover counts; these cover
// the contents of free-form maps the validator cannot reach.
const (
	// MaxDataEntries is the maximum number of data pairs on a notification.
	MaxDataEntries = 20

	// MaxDataKeyLength is the maximum length of a data key.
	MaxDataKeyLength = 64

	// MaxDataValueLength is the maximum length of a data value.
	MaxDataValueLength = 512
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckStringMap validates the entry count of m and the length of every key
// and value in it.
func CheckStringMap(fieldName string, m map[string]string, maxEntries, maxKey, maxValue int) error {
	if err := CheckSliceCount(fieldName+" entries", len(m), maxEntries); err != nil {
		return err
	}
	for k, v := range m {
		if k == "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s keys must not be empty", fieldName))
		}
		if err := CheckStringLength(fieldName+" key", k, maxKey); err != nil {
			return err
		}
		if err := CheckStringLength(fieldName+" value", v, maxValue); err != nil {
			return err
		}
	}
	return nil
}
