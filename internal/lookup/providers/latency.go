package providers

import (
	"context"
	"errors"
	"time"
)

// Sleep simulates upstream latency. It returns a timeout ProviderError when
// ctx's deadline passes first and ctx.Err() when ctx is cancelled.
func Sleep(ctx context.Context, providerID string, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return NewProviderError(ErrorTimeout, providerID, "request timeout", ctx.Err())
		}
		return ctx.Err()
	}
}
