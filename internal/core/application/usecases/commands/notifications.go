package commands

import (
	"context"

	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/metrics"

	"go.uber.org/zap"
)

// publish delivers n and swallows the error: the change it reports is
// already committed.
func publish(ctx context.Context, notifier ports.Notifier, logger *zap.Logger, n ports.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues(string(n.Type)).Inc()
		logger.Warn("notification failed",
			zap.String("event", string(n.Type)),
			zap.Stringer("orderId", n.OrderID),
			zap.Error(err))
	}
}

// statusNotification builds the buyer notification for a forward move into
// EN_ROUTE, DELIVERED or FINALIZED.
func statusNotification(o *order.Order, change order.StatusChange) (ports.Notification, bool) {
	if change.To < change.From {
		return ports.Notification{}, false
	}
	event, ok := ports.EventForStatus(change.To)
	if !ok {
		return ports.Notification{}, false
	}
	return ports.Notification{
		Type:       event,
		OrderID:    o.ID(),
		BuyerID:    o.BuyerID(),
		Status:     change.To,
		OccurredAt: change.At,
	}, true
}

func nopLoggerIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
