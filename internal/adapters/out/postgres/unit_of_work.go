// Package postgres implements the unit of work over GORM. One unit of work
// wraps one database transaction; the repositories it hands out run inside
// that transaction once Begin has been called.
//
// Usage:
//
//	uow := NewGormUnitOfWorkFactory(db).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	change, err := o.Transition(order.EnRoute, actor, now)
//	if err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.TransitionHistoryRepository().Append(ctx, change); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Locking:
//   - GetForUpdate takes the order row lock with NOWAIT.
//   - LockSlot takes a transaction-scoped advisory lock per slot. Callers
//     lock the order row first, then the slot.
package postgres

import (
	"context"
	"fmt"

	"consignment/internal/adapters/out/postgres/historyrepo"
	"consignment/internal/adapters/out/postgres/orderrepo"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/errs"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory hands out one fresh unit of work per business
// operation so concurrent operations never share a transaction.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction and records the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction's writes permanent and closes it.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's writes. After Commit it returns
// gorm.ErrInvalidTransaction, which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository runs inside the transaction when one is open, otherwise
// directly on the connection pool.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TransitionHistoryRepository() ports.TransitionHistoryRepository {
	return historyrepo.NewGormTransitionHistoryRepository(uow.conn())
}

// LockSlot blocks until no other transaction holds the lock for s. The lock
// is released when the transaction ends.
func (uow *GormUnitOfWork) LockSlot(ctx context.Context, s slot.Slot) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if s.IsZero() {
		return errs.NewValueIsRequiredError("slot")
	}

	return uow.tx.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", SlotLockKey(s)).Error
}

// TrackAggregate is called by repositories for every aggregate they write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs lists the aggregates written in this unit of work, in write
// order. The list is cleared by Rollback.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}

// SlotLockKey is the advisory lock name for s.
func SlotLockKey(s slot.Slot) string {
	return fmt.Sprintf("slot:%s:%s", s.Date(), s.WindowID())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
