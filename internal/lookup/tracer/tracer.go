// Package tracer is a small tracing abstraction for the lookup services, so
// that services depend on Tracer and Span rather than on OpenTelemetry.
//
// NoopTracer is used in tests and when tracing is disabled; OTelTracer adapts
// the global OpenTelemetry provider.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
//
//	ctx, span := t.Start(ctx, tracer.SpanSearch, tracer.String(tracer.AttrDomain, "insurance"))
//	defer func() { span.End(err) }()
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanSearch   = "lookup.search"
	SpanFetch    = "lookup.fetch"
	SpanSave     = "lookup.save"
	SpanRenew    = "insurance.renew"
	SpanPay      = "challan.pay"
	SpanUpstream = "lookup.upstream"
)

// Attribute keys. Registrations are always recorded redacted.
const (
	AttrDomain       = "lookup.domain"
	AttrRegistration = "lookup.registration"
	AttrShared       = "lookup.shared"
	AttrOutcome      = "lookup.outcome"
	AttrCategory     = "provider.error_category"
	AttrProvider     = "provider.id"
	AttrStatusCode   = "http.status_code"
	AttrMockLatency  = "mock.latency_ms"
)

// Event names.
const (
	EventRecentAdded  = "recent.added"
	EventEventEmitted = "event.emitted"
)
