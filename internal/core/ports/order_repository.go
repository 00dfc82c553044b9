// Package ports declares the contracts between the use cases and the outside
// world: persistence, locking, notifications, zip-code validation and time.
package ports

import (
	"context"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
)

// OrderRepository persists Order aggregates.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores changes to an order read in the same transaction. The write
	// is conditional on the version that was read; a lost race yields
	// order.StaleOrderStateError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads an order and locks its row until the transaction
	// ends. If another transaction holds the lock the call fails immediately
	// with order.StaleOrderStateError instead of waiting.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountConfirmedInSlot counts orders whose confirmed slot is s.
	CountConfirmedInSlot(ctx context.Context, s slot.Slot) (int, error)

	// Occupancy counts confirmed orders per slot for dates in [from, to].
	Occupancy(ctx context.Context, from, to slot.Date) (map[slot.Slot]int, error)

	// ListFinalizationCandidates returns up to limit delivered, uncontested
	// orders whose status changed at or before cutoff, oldest first.
	ListFinalizationCandidates(ctx context.Context, cutoff time.Time, limit int) ([]kernel.UUID, error)
}

// TransitionHistoryRepository is the append-only log of status changes.
type TransitionHistoryRepository interface {
	Append(ctx context.Context, change order.StatusChange) error
}
