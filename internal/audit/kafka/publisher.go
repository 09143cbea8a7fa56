// Package kafka publishes audit events to the claims audit topic. Events are
// keyed by claim so all decisions of one accident land on the same partition
// in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/audit"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/platform/config"
)

type Publisher struct {
	client *kgo.Client
	topic  string
}

// New connects a producer to the configured brokers. Returns (nil, nil) when
// no brokers are configured so callers can treat Kafka as optional.
func New(cfg config.KafkaConfig) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	return &Publisher{client: client, topic: cfg.Topic}, nil
}

func (p *Publisher) Publish(ctx context.Context, event audit.Event) error {
	record, err := newRecord(event)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func newRecord(event audit.Event) (*kgo.Record, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal audit event: %w", err)
	}
	return &kgo.Record{
		Key:   []byte(event.ClaimID),
		Value: value,
	}, nil
}

func (p *Publisher) Close() {
	p.client.Close()
}
