// Package kafka consumes dispute signals from the dispute service and marks
// orders contested or uncontested.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DisputeOpened   = "opened"
	DisputeResolved = "resolved"

	maxAttempts = 3
)

// DisputeMessage is the wire format of a dispute signal.
type DisputeMessage struct {
	OrderID string `json:"orderId"`
	Event   string `json:"event"`
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type contestedSetter interface {
	Handle(ctx context.Context, cmd commands.SetOrderContestedCommand) error
}

// DisputeConsumer commits a message once it is applied or found malformed.
// Lock conflicts are retried a few times; after that the message is
// committed and logged so one hot order cannot stall the partition.
type DisputeConsumer struct {
	reader  messageReader
	handler contestedSetter
	logger  *zap.Logger
	backoff time.Duration
}

func NewDisputeConsumer(reader messageReader, handler contestedSetter, logger *zap.Logger) *DisputeConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DisputeConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With(zap.String("component", "dispute-consumer")),
		backoff: 200 * time.Millisecond,
	}
}

// NewReader builds a consumer-group reader for the dispute topic.
func NewReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
		MaxWait:        3 * time.Second,
	})
}

// Run consumes until ctx is cancelled. It returns nil on cancellation.
func (c *DisputeConsumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("close reader", zap.Error(err))
		}
	}()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("fetch message", zap.Error(err))
			if !sleep(ctx, 5*time.Second) {
				return nil
			}
			continue
		}

		c.process(ctx, msg)

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("commit message", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (c *DisputeConsumer) process(ctx context.Context, msg kafka.Message) {
	cmd, err := decodeDispute(msg.Value)
	if err != nil {
		c.logger.Warn("dropping malformed dispute message",
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err))
		return
	}

	for attempt := 1; ; attempt++ {
		err = c.handler.Handle(ctx, cmd)
		if err == nil {
			c.logger.Info("dispute applied",
				zap.Stringer("orderId", cmd.OrderID()),
				zap.Bool("contested", cmd.Contested()))
			return
		}
		if !errors.Is(err, order.ErrStaleOrderState) || attempt == maxAttempts || !sleep(ctx, c.backoff*time.Duration(attempt)) {
			break
		}
	}

	level := zap.ErrorLevel
	if errors.Is(err, errs.ErrObjectNotFound) {
		level = zap.WarnLevel
	}
	c.logger.Log(level, "dispute not applied",
		zap.Stringer("orderId", cmd.OrderID()),
		zap.Int64("offset", msg.Offset),
		zap.Error(err))
}

func decodeDispute(value []byte) (commands.SetOrderContestedCommand, error) {
	var m DisputeMessage
	if err := json.Unmarshal(value, &m); err != nil {
		return commands.SetOrderContestedCommand{}, err
	}

	id, err := kernel.UUIDFromString(m.OrderID)
	if err != nil {
		return commands.SetOrderContestedCommand{}, err
	}

	var contested bool
	switch m.Event {
	case DisputeOpened:
		contested = true
	case DisputeResolved:
		contested = false
	default:
		return commands.SetOrderContestedCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"dispute event", fmt.Errorf("%q is not opened or resolved", m.Event))
	}

	return commands.NewSetOrderContestedCommand(id, contested)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
