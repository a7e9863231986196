package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/devconnect/devconnect-api/internal/application/service"
	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

// KafkaPublisher holds one writer per topic the service emits on.
type KafkaPublisher struct {
	writers map[string]*kafka.Writer
}

func NewKafkaPublisher(cfg config.Config, log logger.Logger) (*KafkaPublisher, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
	}

	p := &KafkaPublisher{
		writers: map[string]*kafka.Writer{
			service.TopicProfileEvents: newWriter(service.TopicProfileEvents),
			service.TopicUserEvents:    newWriter(service.TopicUserEvents),
		},
	}

	log.Info("Initialized Kafka producers.")
	return p, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	w, ok := p.writers[topic]
	if !ok {
		return fmt.Errorf("no writer configured for topic %q", topic)
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() {
	for _, w := range p.writers {
		w.Close()
	}
}

// NopPublisher drops every event. Used when Kafka is not configured and in
// tests.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
