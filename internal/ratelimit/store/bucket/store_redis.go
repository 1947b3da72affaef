package bucket

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"motorhub/internal/ratelimit/models"
	"motorhub/pkg/requestcontext"
)

// RedisBucketStore counts requests in fixed windows shared by every
// replica. Each window is its own key and expires with the window.
type RedisBucketStore struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *RedisBucketStore {
	return &RedisBucketStore{client: client}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit models.Limit) (models.Result, error) {
	if limit.Window <= 0 || limit.Requests <= 0 {
		return models.Result{}, fmt.Errorf("rate limit window and requests must be positive")
	}
	now := requestcontext.Now(ctx)
	start := now.Truncate(limit.Window)
	resetAt := start.Add(limit.Window)
	windowKey := key + ":" + strconv.FormatInt(start.Unix(), 10)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.ExpireNX(ctx, windowKey, limit.Window+time.Second)
		return nil
	})
	if err != nil {
		return models.Result{}, fmt.Errorf("increment rate limit window: %w", err)
	}

	count := int(incr.Val())
	allowed := count <= limit.Requests
	remaining := limit.Requests - count
	if !allowed {
		remaining = 0
		// Rejected requests don't use up the window.
		if err := s.client.Decr(ctx, windowKey).Err(); err != nil {
			return models.Result{}, fmt.Errorf("refund rate limit window: %w", err)
		}
	}
	return models.Result{
		Allowed:    allowed,
		Limit:      limit.Requests,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: models.RetryAfterSeconds(allowed, resetAt, now),
	}, nil
}
