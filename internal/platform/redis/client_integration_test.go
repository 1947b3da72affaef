//go:build integration

package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"motorhub/internal/platform/config"
	"motorhub/internal/platform/redis"
	"motorhub/pkg/testutil/containers"
)

func TestClientAgainstRedis(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()

	client, err := redis.New(ctx, config.RedisConfig{URL: rc.URL, PoolSize: 4})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Health(ctx))
	require.NoError(t, client.Set(ctx, "motorhub:ping", "pong", 0).Err())
	client.RecordPoolStats()
	client.RecordPoolStats()
}

func TestNewWithoutURL(t *testing.T) {
	client, err := redis.New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	require.Nil(t, client)
}
