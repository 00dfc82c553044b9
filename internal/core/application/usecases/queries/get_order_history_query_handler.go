package queries

import (
	"context"
	"database/sql"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/pkg/errs"

	"github.com/georgysavva/scany/sqlscan"
)

type GetOrderHistoryQueryHandler struct {
	db *sql.DB
}

func NewGetOrderHistoryQueryHandler(db *sql.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

type transitionRow struct {
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	ActorID    string    `db:"actor_id"`
	ActorRole  string    `db:"actor_role"`
	OccurredAt time.Time `db:"occurred_at"`
}

// Handle returns an empty list for an order that never changed status and
// ObjectNotFoundError for an order that does not exist.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	if err := sqlscan.Get(ctx, h.db, &exists,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, query.OrderID().String()); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var rows []transitionRow
	err := sqlscan.Select(ctx, h.db, &rows, `
		SELECT from_status, to_status, actor_id, actor_role, occurred_at
		FROM order_transitions
		WHERE order_id = $1
		ORDER BY id
	`, query.OrderID().String())
	if err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0, len(rows))
	for _, row := range rows {
		from, fromErr := order.ParseStatus(row.FromStatus)
		if fromErr != nil {
			return nil, fromErr
		}
		to, toErr := order.ParseStatus(row.ToStatus)
		if toErr != nil {
			return nil, toErr
		}
		history = append(history, GetOrderHistoryQueryResponse{
			From:       from,
			To:         to,
			ActorID:    row.ActorID,
			ActorRole:  kernel.Role(row.ActorRole),
			OccurredAt: row.OccurredAt,
		})
	}
	return history, nil
}
