package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorText(t *testing.T) {
	assert.Equal(t, "no policy on record", New(CodeNotFound, "no policy on record").Error())
	assert.Equal(t, "not_found", (&Error{Code: CodeNotFound}).Error())
}

func TestWrapKeepsExistingCode(t *testing.T) {
	inner := New(CodeRateLimited, "insurer is throttling requests")
	wrapped := Wrap(inner, CodeUnavailable, "insurance lookup failed")

	assert.True(t, HasCode(wrapped, CodeRateLimited))
	assert.Equal(t, "insurance lookup failed", wrapped.Error())
	assert.ErrorIs(t, wrapped, inner)
}

func TestWrapPlainError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, CodeUnavailable, "storage unavailable")

	assert.True(t, HasCode(err, CodeUnavailable))
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("renew: %w", New(CodeConflict, "a renewal is already in progress"))

	assert.ErrorIs(t, err, &Error{Code: CodeConflict})
	assert.NotErrorIs(t, err, &Error{Code: CodeNotFound})
	assert.False(t, (&Error{Code: CodeConflict}).Is(errors.New("conflict")))
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct", New(CodeValidation, "x"), CodeValidation, true},
		{"other code", New(CodeValidation, "x"), CodeInternal, false},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", New(CodeTimeout, "x")), CodeTimeout, true},
		{"plain error", errors.New("x"), CodeInternal, false},
		{"nil", nil, CodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCode(tt.err, tt.code))
		})
	}
}

func TestMessage(t *testing.T) {
	require.Equal(t, "vehicle not found", Message(fmt.Errorf("search: %w", New(CodeNotFound, "vehicle not found"))))
	require.Equal(t, "something went wrong, please try again", Message(errors.New("pq: deadlock detected")))
}
