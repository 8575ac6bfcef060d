package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"ec-service/internal/entity"
)

// EventPublisher broadcasts order lifecycle events for downstream
// consumers (stock reservation, fulfillment).
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, order *entity.Order, event string) error
}

// KafkaPublisher writes order events to the order topic. The message
// key carries the event type: order.<event>.<orderID>.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, order *entity.Order, event string) error {
	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order.%s.%s", event, order.ID)),
		Value: orderJSON,
	}
	return p.writer.WriteMessages(ctx, msg)
}

// NopPublisher drops events; used when Kafka is not configured and in
// tests.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(ctx context.Context, order *entity.Order, event string) error {
	return nil
}
