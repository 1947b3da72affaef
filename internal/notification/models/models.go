// Package models defines the notification log and push-permission records.
package models

import (
	"strings"
	"time"

	limits "motorhub/pkg/platform/validation"
	str "motorhub/pkg/string"
	"motorhub/pkg/validation"
)

// Kind is what happened to a notification or to the permission prompt.
type Kind string

const (
	KindReceived            Kind = "received"
	KindOpened              Kind = "opened"
	KindPermissionRequested Kind = "permission_requested"
	KindPermissionGranted   Kind = "permission_granted"
	KindPermissionDenied    Kind = "permission_denied"
)

// DefaultLogLimit caps the stored log; older entries fall off the end.
const DefaultLogLimit = 100

// Entry is one line of the notification log.
type Entry struct {
	ID       string            `json:"id"`
	Kind     Kind              `json:"kind"`
	Title    string            `json:"title,omitempty"`
	Body     string            `json:"body,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
	Platform string            `json:"platform,omitempty"`
	At       time.Time         `json:"at"`
}

// PermissionStatus is the user's answer to the OS push-permission dialog.
type PermissionStatus string

const (
	PermissionUndetermined PermissionStatus = "undetermined"
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
)

func (s PermissionStatus) Decided() bool {
	return s == PermissionGranted || s == PermissionDenied
}

// Permission tracks how often the user has been asked and what they said.
type Permission struct {
	Status         PermissionStatus `json:"status"`
	PromptCount    int              `json:"prompt_count"`
	LastPromptedAt *time.Time       `json:"last_prompted_at,omitempty"`
	DecidedAt      *time.Time       `json:"decided_at,omitempty"`
}

// NewPermission is the state of a user who has never been asked.
func NewPermission() Permission {
	return Permission{Status: PermissionUndetermined}
}

// Prompt reasons.
const (
	ReasonEligible       = "eligible"
	ReasonAlreadyDecided = "already_decided"
	ReasonMaxPrompts     = "max_prompts_reached"
	ReasonCooldown       = "cooldown"
)

// PromptDecision says whether the client should show the permission dialog now.
type PromptDecision struct {
	Prompt         bool       `json:"prompt"`
	Reason         string     `json:"reason"`
	NextEligibleAt *time.Time `json:"next_eligible_at,omitempty"`
}

// PromptPolicy bounds how persistently the user is asked.
type PromptPolicy struct {
	Cooldown   time.Duration
	MaxPrompts int
}

func DefaultPromptPolicy() PromptPolicy {
	return PromptPolicy{Cooldown: 72 * time.Hour, MaxPrompts: 3}
}

// Decide reports whether p allows a prompt at now. A decided permission is
// never prompted again, and neither is one that has used up its prompts.
func (p Permission) Decide(now time.Time, policy PromptPolicy) PromptDecision {
	if p.Status.Decided() {
		return PromptDecision{Reason: ReasonAlreadyDecided}
	}
	if policy.MaxPrompts > 0 && p.PromptCount >= policy.MaxPrompts {
		return PromptDecision{Reason: ReasonMaxPrompts}
	}
	if p.LastPromptedAt != nil {
		next := p.LastPromptedAt.Add(policy.Cooldown)
		if now.Before(next) {
			return PromptDecision{Reason: ReasonCooldown, NextEligibleAt: &next}
		}
	}
	return PromptDecision{Prompt: true, Reason: ReasonEligible}
}

// AppendRequest records a received or opened notification.
type AppendRequest struct {
	Kind  Kind              `json:"kind" validate:"required,oneof=received opened"`
	Title string            `json:"title" validate:"required,notblank,max=200"`
	Body  string            `json:"body" validate:"max=2000"`
	Data  map[string]string `json:"data" validate:"omitempty,max=20"`
}

func (r *AppendRequest) Normalize() {
	r.Kind = Kind(strings.ToLower(strings.TrimSpace(string(r.Kind))))
	str.TrimStrings(&r.Title, &r.Body)
}

func (r *AppendRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	return limits.CheckStringMap("data", r.Data, limits.MaxDataEntries, limits.MaxDataKeyLength, limits.MaxDataValueLength)
}

// Entry converts the request; ID, time and platform are filled by the service.
func (r AppendRequest) Entry() Entry {
	return Entry{Kind: r.Kind, Title: r.Title, Body: r.Body, Data: r.Data}
}

// DecisionRequest records the user's answer to the dialog.
type DecisionRequest struct {
	Status PermissionStatus `json:"status" validate:"required,oneof=granted denied"`
}

func (r *DecisionRequest) Validate() error {
	return validation.Validate(r)
}

// LogResponse is the log as returned to clients, newest first.
type LogResponse struct {
	Entries []Entry `json:"entries"`
	Count   int     `json:"count"`
}

// PermissionResponse pairs the stored permission with the current prompt decision.
type PermissionResponse struct {
	Permission Permission     `json:"permission"`
	Decision   PromptDecision `json:"decision"`
}
