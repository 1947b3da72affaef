package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "motorhub/pkg/domain-errors"
)

func TestPermissionDecide(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	policy := PromptPolicy{Cooldown: 72 * time.Hour, MaxPrompts: 3}
	ago := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}

	tests := []struct {
		name       string
		permission Permission
		prompt     bool
		reason     string
	}{
		{"never asked", NewPermission(), true, ReasonEligible},
		{"granted", Permission{Status: PermissionGranted, PromptCount: 1}, false, ReasonAlreadyDecided},
		{"denied", Permission{Status: PermissionDenied, PromptCount: 1}, false, ReasonAlreadyDecided},
		{"within cooldown", Permission{Status: PermissionUndetermined, PromptCount: 1, LastPromptedAt: ago(time.Hour)}, false, ReasonCooldown},
		{"cooldown elapsed", Permission{Status: PermissionUndetermined, PromptCount: 1, LastPromptedAt: ago(72 * time.Hour)}, true, ReasonEligible},
		{"max prompts", Permission{Status: PermissionUndetermined, PromptCount: 3, LastPromptedAt: ago(30 * 24 * time.Hour)}, false, ReasonMaxPrompts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.permission.Decide(now, policy)
			assert.Equal(t, tt.prompt, d.Prompt)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestPermissionDecideReportsNextEligible(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	last := now.Add(-24 * time.Hour)
	d := Permission{Status: PermissionUndetermined, PromptCount: 1, LastPromptedAt: &last}.
		Decide(now, DefaultPromptPolicy())

	require.NotNil(t, d.NextEligibleAt)
	assert.Equal(t, last.Add(72*time.Hour), *d.NextEligibleAt)
}

func TestPermissionDecideUnlimitedPrompts(t *testing.T) {
	d := Permission{Status: PermissionUndetermined, PromptCount: 50}.
		Decide(time.Now(), PromptPolicy{MaxPrompts: 0})
	assert.True(t, d.Prompt)
}

func TestAppendRequestValidate(t *testing.T) {
	valid := AppendRequest{Kind: KindReceived, Title: "Challan issued"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  AppendRequest
		msg  string
	}{
		{"missing kind", AppendRequest{Title: "x"}, "kind is required"},
		{"permission kind", AppendRequest{Kind: KindPermissionGranted, Title: "x"}, "kind must be one of"},
		{"blank title", AppendRequest{Kind: KindOpened, Title: "   "}, "title must not be blank"},
		{"long body", AppendRequest{Kind: KindOpened, Title: "x", Body: strings.Repeat("a", 2001)}, "body must be at most"},
		{"long data value", AppendRequest{Kind: KindOpened, Title: "x", Data: map[string]string{"challan_id": strings.Repeat("a", 513)}}, "data value exceeds"},
		{"empty data key", AppendRequest{Kind: KindOpened, Title: "x", Data: map[string]string{"": "1"}}, "data keys must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDecisionRequestValidate(t *testing.T) {
	require.NoError(t, (&DecisionRequest{Status: PermissionDenied}).Validate())
	require.Error(t, (&DecisionRequest{Status: PermissionUndetermined}).Validate())
	require.Error(t, (&DecisionRequest{}).Validate())
}
