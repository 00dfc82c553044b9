// Package kafka publishes buyer notifications to a Kafka topic. The
// notification service owns rendering and delivery to the buyer.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"consignment/internal/core/ports"
	"consignment/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// NotificationMessage is the wire format of a notification.
type NotificationMessage struct {
	Type       string        `json:"type"`
	OrderID    string        `json:"orderId"`
	BuyerID    string        `json:"buyerId"`
	Status     string        `json:"status"`
	Slots      []SlotMessage `json:"slots,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

type SlotMessage struct {
	Date     string `json:"date"`
	WindowID string `json:"windowId"`
}

// Notifier sends each notification as one message keyed by order id, so a
// single order's notifications stay in order on one partition.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
}

func NewNotifier(producer sarama.SyncProducer, topic string) (*Notifier, error) {
	if producer == nil {
		return nil, errs.NewValueIsRequiredError("producer")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	return &Notifier{producer: producer, topic: topic}, nil
}

// NewSyncProducer builds a producer that waits for the leader's ack.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Retry.Max = 3
	return sarama.NewSyncProducer(brokers, config)
}

func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(toMessage(notification))
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(notification.OrderID.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(notification.Type)},
		},
	}
	if _, _, err = n.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("publish %s for order %s: %w", notification.Type, notification.OrderID, err)
	}
	return nil
}

func (n *Notifier) Close() error {
	return n.producer.Close()
}

func toMessage(n ports.Notification) NotificationMessage {
	var slots []SlotMessage
	for _, s := range n.Slots {
		slots = append(slots, SlotMessage{Date: s.Date().String(), WindowID: s.WindowID()})
	}
	return NotificationMessage{
		Type:       string(n.Type),
		OrderID:    n.OrderID.String(),
		BuyerID:    n.BuyerID.String(),
		Status:     n.Status.String(),
		Slots:      slots,
		OccurredAt: n.OccurredAt.UTC(),
	}
}
