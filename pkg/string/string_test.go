package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Registration": "registration",
		"PlanType":     "plan_type",
		"UserID":       "user_id",
		"HTTPServer":   "http_server",
		"TermYears":    "term_years",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToSnakeCase(in), in)
	}
}

func TestTrimStrings(t *testing.T) {
	a, b := "  title ", "body\n"
	TrimStrings(&a, &b)
	assert.Equal(t, "title", a)
	assert.Equal(t, "body", b)
}
