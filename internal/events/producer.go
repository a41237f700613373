// Package events publishes order lifecycle events to Kafka. Publishing is
// best-effort: callers log a failed publish and continue, the order itself
// is already committed.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
	EventOrderLocation      = "order_location_updated"
)

type OrderEvent struct {
	Type        string    `json:"type"`
	OrderNumber string    `json:"order_number"`
	VendorCode  string    `json:"vendor_id"`
	Customer    string    `json:"customer_id,omitempty"`
	Status      string    `json:"status,omitempty"`
	Total       float64   `json:"total_amount,omitempty"`
	At          time.Time `json:"at"`
}

// Producer wraps a kafka writer for the order events topic.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 {
		return &Producer{}
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// Publish writes one event keyed by order number. A nil writer (no brokers
// configured) is a silent no-op so dev setups work without Kafka.
func (p *Producer) Publish(ctx context.Context, ev OrderEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderNumber),
		Value: data,
	}); err != nil {
		return fmt.Errorf("events: write: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
