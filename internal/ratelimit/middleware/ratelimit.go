// Package middleware enforces per-user request limits on authenticated routes.
package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"motorhub/internal/platform/privacy"
	"motorhub/internal/ratelimit/models"
	"motorhub/pkg/platform/httputil"
	"motorhub/pkg/requestcontext"
)

// BucketStore records one request against a key.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit models.Limit) (models.Result, error)
}

// Metrics is optional.
type Metrics interface {
	RecordDecision(class string, allowed bool)
	RecordStoreError(class string)
}

// Classifier picks the limit class for a request.
type Classifier func(r *http.Request) models.Class

type Middleware struct {
	store   BucketStore
	limits  map[models.Class]models.Limit
	logger  *slog.Logger
	metrics Metrics
}

func New(store BucketStore, limits map[models.Class]models.Limit, logger *slog.Logger, m Metrics) *Middleware {
	return &Middleware{store: store, limits: limits, logger: logger, metrics: m}
}

// Limit counts each request against the caller's bucket for its class. It
// keys on the authenticated user and falls back to the client address. A
// failing store lets the request through.
func (m *Middleware) Limit(classify Classifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := classify(r)
			limit, ok := m.limits[class]
			if !ok || limit.Requests <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			result, err := m.store.Allow(ctx, models.Key(class, subject(r)), limit)
			if err != nil {
				m.logger.ErrorContext(ctx, "rate limit check failed",
					"error", err,
					"class", class,
					"client_ip", privacy.AnonymizeIP(r.RemoteAddr),
				)
				if m.metrics != nil {
					m.metrics.RecordStoreError(string(class))
				}
				next.ServeHTTP(w, r)
				return
			}
			if m.metrics != nil {
				m.metrics.RecordDecision(string(class), result.Allowed)
			}

			addRateLimitHeaders(w, result)
			if !result.Allowed {
				writeRateLimitExceeded(w, result)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func subject(r *http.Request) string {
	if uid := requestcontext.UserID(r.Context()); !uid.IsNil() {
		return "user:" + uid.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func addRateLimitHeaders(w http.ResponseWriter, result models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result models.Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, models.ExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests. Please try again later.",
		RetryAfter: result.RetryAfter,
	})
}
