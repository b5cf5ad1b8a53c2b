package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Lifecycle actions emitted for every managed resource
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
	ActionPurged  = "purged"
)

// Event describes a lifecycle change of a clinic resource. Consumers use it
// for notifications and audit downstream.
type Event struct {
	Entity   string    `json:"entity"`
	Action   string    `json:"action"`
	EntityID string    `json:"entity_id,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher emits resource lifecycle events
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// KafkaPublisher writes events as JSON messages to a Kafka topic
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer}
}

// Publish serializes and writes the event. Keyed by entity so consumers see
// per-resource ordering.
func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.Entity),
		Value: value,
	})
}

// Close flushes and closes the underlying writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. Used when no brokers are configured and in tests.
type NopPublisher struct{}

// NewNopPublisher creates a publisher that discards events
func NewNopPublisher() *NopPublisher { return &NopPublisher{} }

func (*NopPublisher) Publish(ctx context.Context, evt Event) error { return nil }
func (*NopPublisher) Close() error                                 { return nil }
