package http

import (
	"consignment/internal/core/application/usecases/queries"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toAddress(a servers.Address) (kernel.Address, error) {
	if raw := deref(a.Raw); raw != "" && deref(a.Street) == "" {
		return kernel.NewLegacyAddress(raw)
	}
	return kernel.NewAddress(deref(a.Street), deref(a.City), deref(a.State), deref(a.PostalCode), deref(a.Country))
}

func toSlot(s servers.Slot) (slot.Slot, error) {
	return toDomainSlot(s.Date, s.WindowId)
}

func toDomainSlot(d openapi_types.Date, windowID string) (slot.Slot, error) {
	date, err := slot.NewDate(d.Year(), d.Month(), d.Day())
	if err != nil {
		return slot.Slot{}, err
	}
	return slot.NewSlot(date, windowID)
}

func toSlots(in []servers.Slot) ([]slot.Slot, error) {
	out := make([]slot.Slot, 0, len(in))
	for _, s := range in {
		converted, err := toSlot(s)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func fromSlot(s slot.Slot) servers.Slot {
	return servers.Slot{Date: fromDate(s.Date()), WindowId: s.WindowID()}
}

func fromSlots(in []slot.Slot) []servers.Slot {
	out := make([]servers.Slot, len(in))
	for i, s := range in {
		out[i] = fromSlot(s)
	}
	return out
}

func fromDate(d slot.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func fromOrder(v queries.GetOrderQueryResponse) servers.Order {
	resp := servers.Order{
		Id:        v.ID.Bytes(),
		ListingId: v.ListingID.Bytes(),
		BuyerId:   v.BuyerID.Bytes(),
		SellerId:  v.SellerID.Bytes(),
		Amount: servers.Money{
			MinorUnits: v.AmountMinor,
			Currency:   v.Currency,
		},
		ShippingAddress:       fromAddress(v.ShippingAddress),
		Status:                v.Status.String(),
		StatusUpdatedAt:       v.StatusUpdatedAt,
		StatusUpdatedBy:       v.StatusUpdatedBy,
		PickTicket:            fromPickTicket(v.PickTicket),
		OfferedSlots:          fromSlots(v.OfferedSlots),
		ScheduledPickupTime:   v.ScheduledPickupTime,
		EstimatedDeliveryTime: v.EstimatedDeliveryTime,
		DeliveryAttempts:      v.DeliveryAttempts,
		LastDeliveryAttempt:   v.LastDeliveryAttempt,
		Contested:             v.Contested,
		ZipStatus:             servers.OrderZipStatus(v.ZipStatus.String()),
		Version:               v.Version,
		CreatedAt:             v.CreatedAt,
	}
	if v.ConfirmedSlot != nil {
		confirmed := fromSlot(*v.ConfirmedSlot)
		resp.ConfirmedSlot = &confirmed
	}
	if v.DeliveryNotes != "" {
		notes := v.DeliveryNotes
		resp.DeliveryNotes = &notes
	}
	return resp
}

func fromAddress(a queries.AddressView) servers.Address {
	return servers.Address{
		Street:     optional(a.Street),
		City:       optional(a.City),
		State:      optional(a.State),
		PostalCode: optional(a.PostalCode),
		Country:    optional(a.Country),
		Raw:        optional(a.Raw),
	}
}

func fromPickTicket(p queries.PickTicketView) servers.PickTicket {
	return servers.PickTicket{
		Completed:  checklistNames(p.Completed),
		Missing:    checklistNames(p.Missing),
		IsComplete: p.IsComplete,
	}
}

func checklistNames(items []order.ChecklistItem) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = string(item)
	}
	return names
}

func fromHistory(entries []queries.GetOrderHistoryQueryResponse) []servers.Transition {
	resp := make([]servers.Transition, len(entries))
	for i, e := range entries {
		resp[i] = servers.Transition{
			From:       e.From.String(),
			To:         e.To.String(),
			ActorId:    e.ActorID,
			ActorRole:  string(e.ActorRole),
			OccurredAt: e.OccurredAt,
		}
	}
	return resp
}

func fromGrid(cells []queries.GetSchedulingGridQueryResponse) []servers.GridSlot {
	resp := make([]servers.GridSlot, len(cells))
	for i, cell := range cells {
		resp[i] = servers.GridSlot{
			Date:        fromDate(cell.Slot.Date()),
			WindowId:    cell.Slot.WindowID(),
			Label:       cell.Label,
			Occupied:    cell.Occupied,
			Available:   cell.Available,
			MaxCapacity: cell.MaxCapacity,
		}
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
