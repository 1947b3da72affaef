package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"MOTORHUB_ADDR", "USE_MOCK_DATA", "RECENT_SEARCH_LIMIT", "NOTIFICATION_STORE", "TOKEN_TTL", "RATE_LIMIT_ENABLED", "RATE_LIMIT_UPSTREAM"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Server.TokenTTL)
	assert.True(t, cfg.Lookup.UseMockData)
	assert.Equal(t, 800*time.Millisecond, cfg.Lookup.MockLatency)
	assert.Equal(t, 5, cfg.Lookup.RecentSearchLimit)
	assert.Equal(t, 10, cfg.Lookup.SavedReportLimit)
	assert.Equal(t, StoreMemory, cfg.Notification.Store)
	assert.Equal(t, 100, cfg.Notification.LogLimit)
	assert.Equal(t, 72*time.Hour, cfg.Notification.PromptCooldown)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.UpstreamRequests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MOTORHUB_ADDR", ":9090")
	t.Setenv("USE_MOCK_DATA", "false")
	t.Setenv("MOCK_LATENCY", "50ms")
	t.Setenv("RECENT_SEARCH_LIMIT", "8")
	t.Setenv("NOTIFICATION_STORE", "Redis")
	t.Setenv("NOTIFICATION_LOG_LIMIT", "not-a-number")
	t.Setenv("UPSTREAM_TIMEOUT", "-1s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.False(t, cfg.Lookup.UseMockData)
	assert.Equal(t, 50*time.Millisecond, cfg.Lookup.MockLatency)
	assert.Equal(t, 8, cfg.Lookup.RecentSearchLimit)
	assert.Equal(t, StoreRedis, cfg.Notification.Store)
	assert.Equal(t, 100, cfg.Notification.LogLimit, "invalid values fall back")
	assert.Equal(t, 10*time.Second, cfg.Lookup.UpstreamTimeout, "non-positive durations fall back")
	assert.False(t, cfg.RateLimit.Enabled)
}
