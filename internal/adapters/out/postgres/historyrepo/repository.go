// Package historyrepo appends order status changes to the order_transitions
// table. Rows are never updated or deleted.
package historyrepo

import (
	"context"
	"errors"
	"time"

	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransitionDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"type:varchar(32)"`
	ToStatus   string    `gorm:"type:varchar(32)"`
	ActorID    string    `gorm:"type:varchar(128)"`
	ActorRole  string    `gorm:"type:varchar(16)"`
	OccurredAt time.Time
}

func (TransitionDTO) TableName() string {
	return "order_transitions"
}

type GormTransitionHistoryRepository struct {
	db *gorm.DB
}

func NewGormTransitionHistoryRepository(db *gorm.DB) *GormTransitionHistoryRepository {
	return &GormTransitionHistoryRepository{db: db}
}

func (r *GormTransitionHistoryRepository) Append(ctx context.Context, change order.StatusChange) error {
	if err := errors.Join(change.OrderID.Validate(), change.Actor.Validate()); err != nil {
		return err
	}
	if change.At.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}

	dto := TransitionDTO{
		OrderID:    change.OrderID.Bytes(),
		FromStatus: change.From.String(),
		ToStatus:   change.To.String(),
		ActorID:    change.Actor.ID(),
		ActorRole:  string(change.Actor.Role()),
		OccurredAt: change.At,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
