package producer

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/messaging/kafka"
)

// publishEvent keys the message by client id so every event for one client
// lands on the same partition, preserving lifecycle order for consumers.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	msg := kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}

	return writer.WriteMessages(ctx, msg)
}
