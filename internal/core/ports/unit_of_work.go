package ports

import (
	"context"

	"consignment/internal/core/domain/model/slot"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned by it
// run inside the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TransitionHistoryRepository() TransitionHistoryRepository

	// LockSlot serializes confirmations into one slot until the transaction
	// ends. Callers must hold it while counting occupancy.
	LockSlot(ctx context.Context, s slot.Slot) error
}
