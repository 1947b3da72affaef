//go:build integration

package producer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"motorhub/internal/platform/kafka/admin"
	"motorhub/internal/platform/kafka/producer"
	"motorhub/pkg/testutil/containers"
)

type ProducerIntegrationSuite struct {
	suite.Suite
	kafka    *containers.KafkaContainer
	producer *producer.Producer
}

func TestProducerIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerIntegrationSuite))
}

func (s *ProducerIntegrationSuite) SetupSuite() {
	s.kafka = containers.GetManager().GetKafka(s.T())
	cfg := producer.DefaultConfig(s.kafka.Brokers)
	cfg.DeliveryTimeout = 10 * time.Second
	prod, err := producer.New(cfg, nil)
	s.Require().NoError(err)
	s.producer = prod
}

func (s *ProducerIntegrationSuite) TearDownSuite() {
	if s.producer != nil {
		_ = s.producer.Close()
	}
}

func (s *ProducerIntegrationSuite) TestEnsureTopicIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(admin.EnsureTopic(ctx, s.producer.Client(), "motorhub-ensure", 1, 1))
	s.Require().NoError(admin.EnsureTopic(ctx, s.producer.Client(), "motorhub-ensure", 1, 1))
}

func (s *ProducerIntegrationSuite) TestProduceDelivers() {
	ctx := context.Background()
	topic := "motorhub-produce-sync"
	s.Require().NoError(s.kafka.CreateTopic(ctx, topic))

	err := s.producer.Produce(ctx, &producer.Message{
		Topic:   topic,
		Key:     []byte("owner-1"),
		Value:   []byte(`{"type":"lookup.searched"}`),
		Headers: map[string]string{"event_type": "lookup.searched"},
	})
	s.Require().NoError(err)

	record, err := s.kafka.ReadOne(ctx, topic, 10*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "owner-1"
	})
	s.Require().NoError(err)
	s.JSONEq(`{"type":"lookup.searched"}`, string(record.Value))
	s.True(s.producer.Healthy(ctx))
}
