// Package commands contains the use cases that change order state. Each
// command is a validated value object; each handler runs it inside one unit
// of work and publishes notifications only after commit.
package commands

import (
	"context"

	"consignment/internal/core/domain/model/slot"
	"consignment/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	HistoryRepoFactory interface {
		TransitionHistoryRepository() ports.TransitionHistoryRepository
	}

	SlotLocker interface {
		LockSlot(ctx context.Context, s slot.Slot) error
	}

	// OrderUoW covers commands that change order fields but not status.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW covers status changes, which also append to the history, and slot
	// confirmation, which also takes the slot lock.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   change, err := o.Transition(order.Scheduled, actor, now)
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.TransitionHistoryRepository().Append(ctx, change)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		SlotLocker
	}

	UoWFactory interface {
		Create() UoW
	}
)
