//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"motorhub/internal/platform/kafka/producer"
	"motorhub/pkg/platform/events"
	"motorhub/pkg/testutil/containers"
)

func TestKafkaPublisherWritesEnvelope(t *testing.T) {
	kc := containers.GetManager().GetKafka(t)
	ctx := context.Background()
	topic := "motorhub-events-publisher"
	require.NoError(t, kc.CreateTopic(ctx, topic))

	p, err := producer.New(producer.DefaultConfig(kc.Brokers), nil)
	require.NoError(t, err)
	defer p.Close()

	pub := events.NewKafkaPublisher(p, topic, nil)
	pub.Publish(ctx, events.Event{
		Type:    events.TypeChallanPaid,
		Domain:  "challan",
		Owner:   "owner-7",
		Subject: "MH12****34",
		Outcome: "success",
	})
	require.NoError(t, p.Client().Flush(ctx))

	record, err := kc.ReadOne(ctx, topic, 10*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "owner-7"
	})
	require.NoError(t, err)

	var got events.Event
	require.NoError(t, json.Unmarshal(record.Value, &got))
	assert.Equal(t, events.TypeChallanPaid, got.Type)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.OccurredAt.IsZero())

	headers := map[string]string{}
	for _, h := range record.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, events.TypeChallanPaid, headers["event_type"])
	assert.Equal(t, "challan", headers["domain"])
}
