// Package notify publishes completed-order events so a downstream worker
// can send the confirmation email promised on the payment success screen.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type OrderCompletedEvent struct {
	CheckoutID    string    `json:"checkout_id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	PaymentMethod string    `json:"payment_method"`
	TotalAmount   float64   `json:"total_amount"`
	Currency      string    `json:"currency"`
	CompletedAt   time.Time `json:"completed_at"`
}

type Notifier interface {
	OrderCompleted(ctx context.Context, event OrderCompletedEvent) error
}

type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(brokers ...string) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-confirmations",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaNotifier{writer: w}
}

func (n *KafkaNotifier) OrderCompleted(ctx context.Context, event OrderCompletedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CheckoutID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// NopNotifier is wired when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) OrderCompleted(context.Context, OrderCompletedEvent) error {
	return nil
}
