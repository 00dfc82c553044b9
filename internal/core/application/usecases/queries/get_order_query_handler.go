package queries

import (
	"context"
	"database/sql"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"

	"github.com/georgysavva/scany/sqlscan"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type GetOrderQueryHandler struct {
	db *sql.DB
}

func NewGetOrderQueryHandler(db *sql.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type slotRow struct {
	Date     string `json:"date"`
	WindowID string `json:"windowId"`
}

type orderRow struct {
	ID                    uuid.UUID                    `db:"id"`
	ListingID             uuid.UUID                    `db:"listing_id"`
	BuyerID               uuid.UUID                    `db:"buyer_id"`
	SellerID              uuid.UUID                    `db:"seller_id"`
	AmountMinor           int64                        `db:"amount_minor"`
	AmountCurrency        string                       `db:"amount_currency"`
	AddressStreet         string                       `db:"address_street"`
	AddressCity           string                       `db:"address_city"`
	AddressState          string                       `db:"address_state"`
	AddressPostalCode     string                       `db:"address_postal_code"`
	AddressCountry        string                       `db:"address_country"`
	AddressRaw            string                       `db:"address_raw"`
	Status                string                       `db:"status"`
	StatusUpdatedAt       time.Time                    `db:"status_updated_at"`
	StatusUpdatedBy       string                       `db:"status_updated_by"`
	PickTicketItems       pq.StringArray               `db:"pick_ticket_items"`
	OfferedSlots          datatypes.JSONSlice[slotRow] `db:"offered_slots"`
	ConfirmedSlotDate     sql.NullString               `db:"confirmed_slot_date"`
	ConfirmedSlotWindow   sql.NullString               `db:"confirmed_slot_window"`
	ScheduledPickupTime   sql.NullTime                 `db:"scheduled_pickup_time"`
	EstimatedDeliveryTime sql.NullTime                 `db:"estimated_delivery_time"`
	DeliveryAttempts      int                          `db:"delivery_attempts"`
	LastDeliveryAttempt   sql.NullTime                 `db:"last_delivery_attempt"`
	DeliveryNotes         string                       `db:"delivery_notes"`
	Contested             bool                         `db:"contested"`
	ZipStatus             int                          `db:"zip_status"`
	Version               int64                        `db:"version"`
	CreatedAt             time.Time                    `db:"created_at"`
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	err := sqlscan.Get(ctx, h.db, &row, `
		SELECT
			id, listing_id, buyer_id, seller_id,
			amount_minor, amount_currency,
			address_street, address_city, address_state,
			address_postal_code, address_country, address_raw,
			status, status_updated_at, status_updated_by,
			pick_ticket_items, offered_slots,
			confirmed_slot_date, confirmed_slot_window,
			scheduled_pickup_time, estimated_delivery_time,
			delivery_attempts, last_delivery_attempt, delivery_notes,
			contested, zip_status, version, created_at
		FROM orders
		WHERE id = $1
	`, query.OrderID().String())
	if err != nil {
		if sqlscan.NotFound(err) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	return row.toResponse()
}

func (r orderRow) toResponse() (GetOrderQueryResponse, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{r.ID, r.ListingID, r.BuyerID, r.SellerID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return GetOrderQueryResponse{}, err
		}
		ids = append(ids, id)
	}

	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	ticket, err := pickTicketView(r.PickTicketItems)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	offered := make([]slot.Slot, 0, len(r.OfferedSlots))
	for _, s := range r.OfferedSlots {
		parsed, slotErr := parseSlot(s.Date, s.WindowID)
		if slotErr != nil {
			return GetOrderQueryResponse{}, slotErr
		}
		offered = append(offered, parsed)
	}

	var confirmed *slot.Slot
	if r.ConfirmedSlotDate.Valid && r.ConfirmedSlotWindow.Valid {
		parsed, slotErr := parseSlot(r.ConfirmedSlotDate.String, r.ConfirmedSlotWindow.String)
		if slotErr != nil {
			return GetOrderQueryResponse{}, slotErr
		}
		confirmed = &parsed
	}

	return GetOrderQueryResponse{
		ID:          ids[0],
		ListingID:   ids[1],
		BuyerID:     ids[2],
		SellerID:    ids[3],
		AmountMinor: r.AmountMinor,
		Currency:    r.AmountCurrency,
		ShippingAddress: AddressView{
			Street:     r.AddressStreet,
			City:       r.AddressCity,
			State:      r.AddressState,
			PostalCode: r.AddressPostalCode,
			Country:    r.AddressCountry,
			Raw:        r.AddressRaw,
		},
		Status:                status,
		StatusUpdatedAt:       r.StatusUpdatedAt,
		StatusUpdatedBy:       r.StatusUpdatedBy,
		PickTicket:            ticket,
		OfferedSlots:          offered,
		ConfirmedSlot:         confirmed,
		ScheduledPickupTime:   nullTime(r.ScheduledPickupTime),
		EstimatedDeliveryTime: nullTime(r.EstimatedDeliveryTime),
		DeliveryAttempts:      r.DeliveryAttempts,
		LastDeliveryAttempt:   nullTime(r.LastDeliveryAttempt),
		DeliveryNotes:         r.DeliveryNotes,
		Contested:             r.Contested,
		ZipStatus:             order.ZipStatus(r.ZipStatus),
		Version:               r.Version,
		CreatedAt:             r.CreatedAt,
	}, nil
}

func pickTicketView(raw []string) (PickTicketView, error) {
	items := make([]order.ChecklistItem, 0, len(raw))
	for _, s := range raw {
		item, err := order.ParseChecklistItem(s)
		if err != nil {
			return PickTicketView{}, err
		}
		items = append(items, item)
	}
	ticket, err := order.NewPickTicket(items...)
	if err != nil {
		return PickTicketView{}, err
	}
	return PickTicketView{
		Completed:  ticket.Completed(),
		Missing:    ticket.Missing(),
		IsComplete: ticket.IsComplete(),
	}, nil
}

func parseSlot(date, windowID string) (slot.Slot, error) {
	d, err := slot.ParseDate(date)
	if err != nil {
		return slot.Slot{}, err
	}
	return slot.NewSlot(d, windowID)
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
