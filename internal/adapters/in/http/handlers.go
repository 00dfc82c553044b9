package http

import (
	"context"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/application/usecases/queries"
	"consignment/internal/core/domain/model/order"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type CompletePickTicketHandler interface {
	Handle(ctx context.Context, cmd commands.CompletePickTicketCommand) error
}

type TransitionOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.TransitionOrderStatusCommand) error
}

type UpdateDeliveryInfoHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateDeliveryInfoCommand) error
}

type OfferSlotsHandler interface {
	Handle(ctx context.Context, cmd commands.OfferSlotsCommand) error
}

type ConfirmSlotHandler interface {
	Handle(ctx context.Context, cmd commands.ConfirmSlotCommand) error
}

type ValidateOrderZipCodeHandler interface {
	Handle(ctx context.Context, cmd commands.ValidateOrderZipCodeCommand) (order.ZipStatus, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type GetOrderHistoryHandler interface {
	Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.GetOrderHistoryQueryResponse, error)
}

type GetSlotCapacityHandler interface {
	Handle(ctx context.Context, query queries.GetSlotCapacityQuery) (queries.GetSlotCapacityQueryResponse, error)
}

type GetSchedulingGridHandler interface {
	Handle(ctx context.Context, query queries.GetSchedulingGridQuery) ([]queries.GetSchedulingGridQueryResponse, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder           CreateOrderHandler
	CompletePickTicket    CompletePickTicketHandler
	TransitionOrderStatus TransitionOrderStatusHandler
	UpdateDeliveryInfo    UpdateDeliveryInfoHandler
	OfferSlots            OfferSlotsHandler
	ConfirmSlot           ConfirmSlotHandler
	ValidateOrderZipCode  ValidateOrderZipCodeHandler

	// Query handlers
	GetOrder          GetOrderHandler
	GetOrderHistory   GetOrderHistoryHandler
	GetSlotCapacity   GetSlotCapacityHandler
	GetSchedulingGrid GetSchedulingGridHandler
}
