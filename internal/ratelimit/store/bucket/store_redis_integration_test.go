//go:build integration

package bucket

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorhub/internal/ratelimit/models"
	"motorhub/pkg/testutil/containers"
)

func TestRedisBucketStore(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	store := NewRedis(rc.Client)
	limit := models.Limit{Requests: 2, Window: time.Minute}
	start := time.Date(2026, 3, 14, 9, 0, 5, 0, time.UTC)
	ctx := func(d time.Duration) context.Context { return at(start.Add(d)) }

	res, err := store.Allow(ctx(0), "redis-k", limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)

	res, err = store.Allow(ctx(time.Second), "redis-k", limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(ctx(2*time.Second), "redis-k", limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, start.Truncate(time.Minute).Add(time.Minute), res.ResetAt)
	assert.Equal(t, 53, res.RetryAfter)

	// Refunded rejections leave the counter at the limit.
	n, err := rc.Client.Get(context.Background(), "redis-k:"+strconv.FormatInt(start.Truncate(time.Minute).Unix(), 10)).Int()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	res, err = store.Allow(ctx(time.Minute), "redis-k", limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed, "next window starts empty")
}
