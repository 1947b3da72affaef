// Package models defines rate limit classes and results.
package models

import (
	"fmt"
	"time"
)

// Class groups endpoints that share a limit.
type Class string

const (
	// ClassUpstream covers requests that reach a paid upstream: searches,
	// renewals and payments.
	ClassUpstream Class = "upstream"
	// ClassDefault covers every other authenticated request.
	ClassDefault Class = "default"
)

// Limit is the allowance for one class.
type Limit struct {
	Requests int
	Window   time.Duration
}

type Result struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// Key is the bucket for one subject within one class.
func Key(class Class, subject string) string {
	return fmt.Sprintf("ratelimit:%s:%s", class, subject)
}

type ExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"error_description"`
	RetryAfter int    `json:"retry_after"`
}

// RetryAfterSeconds rounds the wait until resetAt up to whole seconds.
func RetryAfterSeconds(allowed bool, resetAt, now time.Time) int {
	if allowed || !resetAt.After(now) {
		return 0
	}
	d := resetAt.Sub(now)
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
