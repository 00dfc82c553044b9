// Package lognotifier delivers buyer notifications to the service log. It is
// used when no message broker is configured.
package lognotifier

import (
	"context"

	"consignment/internal/core/ports"

	"go.uber.org/zap"
)

var _ ports.Notifier = (*Notifier)(nil)

type Notifier struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{logger: logger.With(zap.String("component", "notifier"))}
}

func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slots := make([]string, len(notification.Slots))
	for i, s := range notification.Slots {
		slots[i] = s.Key()
	}

	n.logger.Info("buyer notification",
		zap.String("type", string(notification.Type)),
		zap.Stringer("orderId", notification.OrderID),
		zap.Stringer("buyerId", notification.BuyerID),
		zap.Stringer("status", notification.Status),
		zap.Strings("slots", slots),
		zap.Time("occurredAt", notification.OccurredAt))
	return nil
}
