// Package events publishes domain events (searches, renewals, payments,
// notification activity) for downstream analytics.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"motorhub/internal/platform/kafka/producer"
)

// Event types.
const (
	TypeSearched        = "lookup.searched"
	TypeReportSaved     = "lookup.report_saved"
	TypePolicyRenewed   = "insurance.policy_renewed"
	TypeChallanPaid     = "challan.paid"
	TypeNotificationLog = "notification.logged"
)

// Event is the envelope written to the event stream. Subject carries a
// redacted registration number, never the full value.
type Event struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Domain     string            `json:"domain"`
	Owner      string            `json:"owner"`
	Subject    string            `json:"subject,omitempty"`
	Outcome    string            `json:"outcome,omitempty"`
	Platform   string            `json:"platform,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Publisher emits events. Publish must not block on the broker; failures are
// the publisher's to log, callers never fail a request over an event.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// KafkaPublisher writes events as JSON to a single topic, keyed by owner so
// one user's events stay ordered within a partition.
type KafkaPublisher struct {
	producer *producer.Producer
	topic    string
	logger   *slog.Logger
}

func NewKafkaPublisher(p *producer.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{producer: p, topic: topic, logger: logger}
}

func (k *KafkaPublisher) Publish(ctx context.Context, event Event) {
	event = normalize(event)
	value, err := json.Marshal(event)
	if err != nil {
		k.logger.ErrorContext(ctx, "failed to marshal event", "type", event.Type, "error", err)
		return
	}
	err = k.producer.ProduceAsync(&producer.Message{
		Topic: k.topic,
		Key:   []byte(event.Owner),
		Value: value,
		Headers: map[string]string{
			"event_type": event.Type,
			"domain":     event.Domain,
		},
	})
	if err != nil {
		k.logger.WarnContext(ctx, "failed to publish event", "type", event.Type, "error", err)
	}
}

// NoopPublisher discards events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) {}

// LogPublisher writes events to a logger at debug level. Used when no broker
// is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (l LogPublisher) Publish(ctx context.Context, event Event) {
	event = normalize(event)
	l.Logger.DebugContext(ctx, "event",
		"type", event.Type,
		"domain", event.Domain,
		"subject", event.Subject,
		"outcome", event.Outcome,
	)
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, normalize(event))
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// OfType filters recorded events by type.
func (r *Recorder) OfType(eventType string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func normalize(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	return e
}

// String is used in logs.
func (e Event) String() string {
	return fmt.Sprintf("%s/%s %s", e.Domain, e.Type, e.Outcome)
}

var (
	_ Publisher = (*KafkaPublisher)(nil)
	_ Publisher = NoopPublisher{}
	_ Publisher = LogPublisher{}
	_ Publisher = (*Recorder)(nil)
)
