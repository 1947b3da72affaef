// Package httptransport assembles the public router: middleware, probes and
// the feature handlers.
package httptransport

import (
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"

	challanhandler "motorhub/internal/challan/handler"
	challan "motorhub/internal/challan/service"
	insurancehandler "motorhub/internal/insurance/handler"
	insurance "motorhub/internal/insurance/service"
	notificationhandler "motorhub/internal/notification/handler"
	"motorhub/internal/platform/health"
	ratelimit "motorhub/internal/ratelimit/middleware"
	ratelimitmodels "motorhub/internal/ratelimit/models"
	"motorhub/pkg/platform/middleware/auth"
	"motorhub/pkg/platform/middleware/device"
	"motorhub/pkg/platform/middleware/request"
)

// DefaultRequestTimeout bounds a request end to end.
const DefaultRequestTimeout = 30 * time.Second

// Deps is everything the router mounts. Metrics, MetricsHandler and RateLimit
// are optional.
type Deps struct {
	Logger         *slog.Logger
	Validator      auth.JWTValidator
	Health         *health.Handler
	Insurance      *insurance.Service
	Challan        *challan.Service
	Notifications  notificationhandler.Service
	Metrics        *request.Metrics
	MetricsHandler http.Handler
	RateLimit      *ratelimit.Middleware
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// NewRouter wires all public endpoints with middleware. Probes and /metrics
// are unauthenticated; everything else needs a bearer token.
func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout == 0 {
		d.RequestTimeout = DefaultRequestTimeout
	}
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Logger(d.Logger))
	r.Use(request.Latency(d.Metrics, routePattern))
	r.Use(request.Timeout(d.RequestTimeout))

	d.Health.Register(r)
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		if d.MaxBodyBytes > 0 {
			r.Use(request.BodyLimit(d.MaxBodyBytes))
		}
		r.Use(device.Platform)
		r.Use(auth.RequireAuth(d.Validator, d.Logger))
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Limit(rateLimitClass))
		}

		insurancehandler.New(d.Insurance.Service, d.Insurance, d.Logger).Register(r)
		challanhandler.New(d.Challan.Service, d.Challan, d.Logger).Register(r)
		notificationhandler.New(d.Notifications, d.Logger).Register(r)
	})

	return r
}

// rateLimitClass puts the calls that reach an upstream on the stricter limit.
func rateLimitClass(r *http.Request) ratelimitmodels.Class {
	if r.Method == http.MethodPost {
		switch path.Base(r.URL.Path) {
		case "search", "renew", "pay":
			return ratelimitmodels.ClassUpstream
		}
	}
	return ratelimitmodels.ClassDefault
}

// routePattern labels latency by chi route so path parameters stay out of
// metric labels. It runs after routing, when the pattern is known.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return r.Method + " " + p
		}
	}
	return r.Method + " unmatched"
}
