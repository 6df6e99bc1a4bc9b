// Package events forwards raised surveillance alerts to a message broker so
// that downstream notifiers can act on them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// AlertEvent is the message published for every alert of a generated report.
type AlertEvent struct {
	ZoneID      int       `json:"zone_id"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	AuditID     string    `json:"audit_id"`
	RaisedAt    time.Time `json:"raised_at"`
}

// Publisher delivers alert events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishAlerts(ctx context.Context, events []AlertEvent) error
	Close() error
}

// NopPublisher drops every event; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishAlerts(context.Context, []AlertEvent) error { return nil }
func (NopPublisher) Close() error { return nil }

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes alert events to a Kafka topic, keyed by zone so all
// alerts of a zone land on the same partition.
type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		// Publishing happens on the request path; flush small batches at once.
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}}
}

func (p *KafkaPublisher) PublishAlerts(ctx context.Context, events []AlertEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal alert event: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.Itoa(ev.ZoneID)),
			Value: payload,
		})
	}
	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write alert events: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
