package queries

import (
	"context"
	"database/sql"
	"fmt"

	"consignment/internal/core/domain/services"
	"consignment/internal/pkg/errs"

	"github.com/georgysavva/scany/sqlscan"
)

type GetSlotCapacityQueryHandler struct {
	db        *sql.DB
	scheduler *services.SlotScheduler
}

func NewGetSlotCapacityQueryHandler(db *sql.DB, scheduler *services.SlotScheduler) GetSlotCapacityQueryHandler {
	return GetSlotCapacityQueryHandler{db: db, scheduler: scheduler}
}

type slotCapacityRow struct {
	OrderExists bool `db:"order_exists"`
	Occupied    int  `db:"occupied"`
}

func (h GetSlotCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetSlotCapacityQuery,
) (GetSlotCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSlotCapacityQueryResponse{}, err
	}

	s := query.Slot()
	if _, ok := h.scheduler.Calendar().Window(s.WindowID()); !ok {
		return GetSlotCapacityQueryResponse{}, errs.NewValueIsInvalidErrorWithCause(
			"window", fmt.Errorf("%q is not a delivery window", s.WindowID()))
	}

	var row slotCapacityRow
	err := sqlscan.Get(ctx, h.db, &row, `
		SELECT
			EXISTS (SELECT 1 FROM orders WHERE id = $1) AS order_exists,
			(SELECT count(*) FROM orders
			 WHERE confirmed_slot_date = $2 AND confirmed_slot_window = $3) AS occupied
	`, query.OrderID().String(), s.Date().String(), s.WindowID())
	if err != nil {
		return GetSlotCapacityQueryResponse{}, err
	}
	if !row.OrderExists {
		return GetSlotCapacityQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	capacity := h.scheduler.Capacity(row.Occupied)
	return GetSlotCapacityQueryResponse{
		Slot:        s,
		Occupied:    capacity.Occupied(),
		Available:   capacity.Available(),
		MaxCapacity: capacity.MaxCapacity(),
	}, nil
}
