package queries

import (
	"context"
	"database/sql"

	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"

	"github.com/georgysavva/scany/sqlscan"
)

type GetSchedulingGridQueryHandler struct {
	db        *sql.DB
	scheduler *services.SlotScheduler
	clock     ports.Clock
}

func NewGetSchedulingGridQueryHandler(
	db *sql.DB,
	scheduler *services.SlotScheduler,
	clock ports.Clock,
) GetSchedulingGridQueryHandler {
	return GetSchedulingGridQueryHandler{db: db, scheduler: scheduler, clock: clock}
}

type occupancyRow struct {
	Date     string `db:"date"`
	WindowID string `db:"window_id"`
	Occupied int    `db:"occupied"`
}

func (h GetSchedulingGridQueryHandler) Handle(
	ctx context.Context,
	query GetSchedulingGridQuery,
) ([]GetSchedulingGridQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	from, to := h.scheduler.HorizonRange(now)

	var rows []occupancyRow
	err := sqlscan.Select(ctx, h.db, &rows, `
		SELECT
			confirmed_slot_date AS date,
			confirmed_slot_window AS window_id,
			count(*) AS occupied
		FROM orders
		WHERE confirmed_slot_date BETWEEN $1 AND $2
		GROUP BY confirmed_slot_date, confirmed_slot_window
	`, from.String(), to.String())
	if err != nil {
		return nil, err
	}

	occupancy := make(services.Occupancy, len(rows))
	for _, row := range rows {
		s, slotErr := parseSlot(row.Date, row.WindowID)
		if slotErr != nil {
			return nil, slotErr
		}
		occupancy[s] = row.Occupied
	}

	grid := h.scheduler.Grid(now, occupancy)
	response := make([]GetSchedulingGridQueryResponse, 0, len(grid))
	for _, cell := range grid {
		response = append(response, GetSchedulingGridQueryResponse{
			Slot:        cell.Slot,
			Label:       cell.Window.Label(),
			Occupied:    cell.Capacity.Occupied(),
			Available:   cell.Capacity.Available(),
			MaxCapacity: cell.Capacity.MaxCapacity(),
		})
	}
	return response, nil
}
