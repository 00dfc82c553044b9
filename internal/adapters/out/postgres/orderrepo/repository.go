package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgCode(err) == pgUniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("order already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column except the identity and creation time. The
// write only applies if the stored version is still the one the aggregate
// was read at; the aggregate's version advances on success.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return order.NewStaleOrderStateError(aggregate.ID().String(),
			errs.NewVersionIsInvalidErrorWithCause("version", fmt.Errorf("version %d was superseded", aggregate.Version())))
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate locks the row with NOWAIT: a second writer fails at once
// instead of queueing behind the first.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	locked := r.db.Clauses(clause.Locking{Strength: "UPDATE", Options: "NOWAIT"})
	o, err := r.get(ctx, locked, id)
	if err != nil && pgCode(err) == pgLockNotAvailable {
		return nil, order.NewStaleOrderStateError(id.String(), err)
	}
	return o, err
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) CountConfirmedInSlot(ctx context.Context, s slot.Slot) (int, error) {
	if s.IsZero() {
		return 0, errs.NewValueIsRequiredError("slot")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("confirmed_slot_date = ? AND confirmed_slot_window = ?", s.Date().String(), s.WindowID()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

type occupancyRow struct {
	Date     string
	WindowID string
	Occupied int
}

func (r *GormOrderRepository) Occupancy(ctx context.Context, from, to slot.Date) (map[slot.Slot]int, error) {
	if to.Before(from) {
		return nil, errs.NewValueIsInvalidErrorWithCause("date range", fmt.Errorf("%s is before %s", to, from))
	}

	var rows []occupancyRow
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("confirmed_slot_date AS date, confirmed_slot_window AS window_id, count(*) AS occupied").
		Where("confirmed_slot_date BETWEEN ? AND ?", from.String(), to.String()).
		Group("confirmed_slot_date, confirmed_slot_window").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	occupancy := make(map[slot.Slot]int, len(rows))
	for _, row := range rows {
		s, slotErr := slotToDomain(SlotDTO{Date: row.Date, WindowID: row.WindowID})
		if slotErr != nil {
			return nil, slotErr
		}
		occupancy[s] = row.Occupied
	}
	return occupancy, nil
}

func (r *GormOrderRepository) ListFinalizationCandidates(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]kernel.UUID, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND contested = false AND status_updated_at <= ?", order.Delivered.String(), cutoff).
		Order("status_updated_at, id").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	result := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		converted, convErr := kernel.UUIDFromBytes(id[:])
		if convErr != nil {
			return nil, convErr
		}
		result = append(result, converted)
	}
	return result, nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
