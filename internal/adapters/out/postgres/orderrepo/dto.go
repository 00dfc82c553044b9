// Package orderrepo persists the order aggregate with GORM. An order is one
// row; the pick ticket is a text array and the offered slots a JSON array.
package orderrepo

import (
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// OrderDTO is the row layout of the orders table.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ListingID             uuid.UUID  `gorm:"type:uuid"`
	BuyerID               uuid.UUID  `gorm:"type:uuid"`
	SellerID              uuid.UUID  `gorm:"type:uuid"`
	Amount                MoneyDTO   `gorm:"embedded;embeddedPrefix:amount_"`
	Address               AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Status                string     `gorm:"type:varchar(32)"`
	StatusUpdatedAt       time.Time
	StatusUpdatedBy       string                       `gorm:"type:varchar(128)"`
	PickTicketItems       pq.StringArray               `gorm:"type:text[]"`
	OfferedSlots          datatypes.JSONSlice[SlotDTO] `gorm:"type:jsonb"`
	ConfirmedSlotDate     *string                      `gorm:"type:varchar(10)"`
	ConfirmedSlotWindow   *string                      `gorm:"type:varchar(64)"`
	ScheduledPickupTime   *time.Time
	EstimatedDeliveryTime *time.Time
	DeliveryAttempts      int
	LastDeliveryAttempt   *time.Time
	DeliveryNotes         string
	Contested             bool
	ZipStatus             int `gorm:"type:smallint"`
	Version               int64
	CreatedAt             time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

type MoneyDTO struct {
	Minor    int64
	Currency string `gorm:"type:char(3)"`
}

// AddressDTO holds either the structured fields or, for legacy orders, only
// Raw plus the postal code extracted from it.
type AddressDTO struct {
	Street     string
	City       string
	State      string
	PostalCode string `gorm:"type:varchar(16)"`
	Country    string
	Raw        string
}

type SlotDTO struct {
	Date     string `json:"date"`
	WindowID string `json:"windowId"`
}

func fromDomain(o *order.Order) OrderDTO {
	completed := o.PickTicket().Completed()
	items := make(pq.StringArray, 0, len(completed))
	for _, item := range completed {
		items = append(items, string(item))
	}

	offered := o.OfferedSlots()
	slots := make([]SlotDTO, 0, len(offered))
	for _, s := range offered {
		slots = append(slots, slotToDTO(s))
	}

	var confirmedDate, confirmedWindow *string
	if cs := o.ConfirmedSlot(); !cs.IsZero() {
		date, window := cs.Date().String(), cs.WindowID()
		confirmedDate, confirmedWindow = &date, &window
	}

	addr := o.ShippingAddress()

	return OrderDTO{
		ID:        o.ID().Bytes(),
		ListingID: o.ListingID().Bytes(),
		BuyerID:   o.BuyerID().Bytes(),
		SellerID:  o.SellerID().Bytes(),
		Amount: MoneyDTO{
			Minor:    o.Amount().MinorUnits(),
			Currency: o.Amount().Currency(),
		},
		Address: AddressDTO{
			Street:     addr.Street(),
			City:       addr.City(),
			State:      addr.State(),
			PostalCode: addr.PostalCode(),
			Country:    addr.Country(),
			Raw:        addr.Raw(),
		},
		Status:                o.Status().String(),
		StatusUpdatedAt:       o.StatusUpdatedAt(),
		StatusUpdatedBy:       o.StatusUpdatedBy(),
		PickTicketItems:       items,
		OfferedSlots:          datatypes.NewJSONSlice(slots),
		ConfirmedSlotDate:     confirmedDate,
		ConfirmedSlotWindow:   confirmedWindow,
		ScheduledPickupTime:   o.ScheduledPickupTime(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		DeliveryAttempts:      o.DeliveryAttempts(),
		LastDeliveryAttempt:   o.LastDeliveryAttempt(),
		DeliveryNotes:         o.DeliveryNotes(),
		Contested:             o.IsContested(),
		ZipStatus:             int(o.ZipStatus()),
		Version:               o.Version(),
		CreatedAt:             o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	listingID, err := kernel.UUIDFromBytes(dto.ListingID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount.Minor, dto.Amount.Currency)
	if err != nil {
		return nil, err
	}

	addr, err := addressToDomain(dto.Address)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.ChecklistItem, 0, len(dto.PickTicketItems))
	for _, raw := range dto.PickTicketItems {
		item, itemErr := order.ParseChecklistItem(raw)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}
	ticket, err := order.NewPickTicket(items...)
	if err != nil {
		return nil, err
	}

	offered := make([]slot.Slot, 0, len(dto.OfferedSlots))
	for _, s := range dto.OfferedSlots {
		parsed, slotErr := slotToDomain(s)
		if slotErr != nil {
			return nil, slotErr
		}
		offered = append(offered, parsed)
	}

	var confirmed slot.Slot
	if dto.ConfirmedSlotDate != nil && dto.ConfirmedSlotWindow != nil {
		confirmed, err = slotToDomain(SlotDTO{Date: *dto.ConfirmedSlotDate, WindowID: *dto.ConfirmedSlotWindow})
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    id,
		ListingID:             listingID,
		BuyerID:               buyerID,
		SellerID:              sellerID,
		Amount:                amount,
		ShippingAddress:       addr,
		Status:                status,
		StatusUpdatedAt:       dto.StatusUpdatedAt,
		StatusUpdatedBy:       dto.StatusUpdatedBy,
		PickTicket:            ticket,
		OfferedSlots:          offered,
		ConfirmedSlot:         confirmed,
		ScheduledPickupTime:   dto.ScheduledPickupTime,
		EstimatedDeliveryTime: dto.EstimatedDeliveryTime,
		DeliveryAttempts:      dto.DeliveryAttempts,
		LastDeliveryAttempt:   dto.LastDeliveryAttempt,
		DeliveryNotes:         dto.DeliveryNotes,
		Contested:             dto.Contested,
		ZipStatus:             order.ZipStatus(dto.ZipStatus),
		Version:               dto.Version,
		CreatedAt:             dto.CreatedAt,
	})
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	if dto.Raw != "" {
		return kernel.NewLegacyAddress(dto.Raw)
	}
	return kernel.NewAddress(dto.Street, dto.City, dto.State, dto.PostalCode, dto.Country)
}

func slotToDTO(s slot.Slot) SlotDTO {
	return SlotDTO{Date: s.Date().String(), WindowID: s.WindowID()}
}

func slotToDomain(dto SlotDTO) (slot.Slot, error) {
	date, err := slot.ParseDate(dto.Date)
	if err != nil {
		return slot.Slot{}, err
	}
	return slot.NewSlot(date, dto.WindowID)
}
