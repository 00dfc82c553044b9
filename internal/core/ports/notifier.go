package ports

import (
	"context"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
)

// EventType names a buyer-facing notification.
type EventType string

const (
	EventSlotsOffered   EventType = "SlotsOffered"
	EventOrderEnRoute   EventType = "OrderEnRoute"
	EventOrderDelivered EventType = "OrderDelivered"
	EventOrderFinalized EventType = "OrderFinalized"
)

// EventForStatus returns the notification sent when an order enters status,
// if any.
func EventForStatus(status order.Status) (EventType, bool) {
	switch status {
	case order.EnRoute:
		return EventOrderEnRoute, true
	case order.Delivered:
		return EventOrderDelivered, true
	case order.Finalized:
		return EventOrderFinalized, true
	default:
		return "", false
	}
}

// Notification is what the notifier collaborator renders and delivers.
type Notification struct {
	Type       EventType
	OrderID    kernel.UUID
	BuyerID    kernel.UUID
	Status     order.Status
	Slots      []slot.Slot
	OccurredAt time.Time
}

// Notifier delivers buyer notifications. It is called after commit; failures
// are logged by the caller and never undo the change.
//
//go:generate mockgen -source=notifier.go -destination=mocks/notifier_mock.go -package=mocks
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
