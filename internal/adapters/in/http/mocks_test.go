package http

import (
	"context"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/application/usecases/queries"
	"consignment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type mockCommandHandler[C any] struct {
	mock.Mock
}

func (m *mockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type mockZipHandler struct {
	mock.Mock
}

func (m *mockZipHandler) Handle(ctx context.Context, cmd commands.ValidateOrderZipCodeCommand) (order.ZipStatus, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(order.ZipStatus), args.Error(1)
}

type mockQueryHandler[Q any, R any] struct {
	mock.Mock
}

func (m *mockQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(R)
	return resp, args.Error(1)
}

type handlerMocks struct {
	createOrder        *mockCommandHandler[commands.CreateOrderCommand]
	completePickTicket *mockCommandHandler[commands.CompletePickTicketCommand]
	transition         *mockCommandHandler[commands.TransitionOrderStatusCommand]
	deliveryInfo       *mockCommandHandler[commands.UpdateDeliveryInfoCommand]
	offerSlots         *mockCommandHandler[commands.OfferSlotsCommand]
	confirmSlot        *mockCommandHandler[commands.ConfirmSlotCommand]
	zip                *mockZipHandler

	getOrder *mockQueryHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	history  *mockQueryHandler[queries.GetOrderHistoryQuery, []queries.GetOrderHistoryQueryResponse]
	capacity *mockQueryHandler[queries.GetSlotCapacityQuery, queries.GetSlotCapacityQueryResponse]
	grid     *mockQueryHandler[queries.GetSchedulingGridQuery, []queries.GetSchedulingGridQueryResponse]
}

func newHandlerMocks() *handlerMocks {
	return &handlerMocks{
		createOrder:        &mockCommandHandler[commands.CreateOrderCommand]{},
		completePickTicket: &mockCommandHandler[commands.CompletePickTicketCommand]{},
		transition:         &mockCommandHandler[commands.TransitionOrderStatusCommand]{},
		deliveryInfo:       &mockCommandHandler[commands.UpdateDeliveryInfoCommand]{},
		offerSlots:         &mockCommandHandler[commands.OfferSlotsCommand]{},
		confirmSlot:        &mockCommandHandler[commands.ConfirmSlotCommand]{},
		zip:                &mockZipHandler{},
		getOrder:           &mockQueryHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]{},
		history:            &mockQueryHandler[queries.GetOrderHistoryQuery, []queries.GetOrderHistoryQueryResponse]{},
		capacity:           &mockQueryHandler[queries.GetSlotCapacityQuery, queries.GetSlotCapacityQueryResponse]{},
		grid:               &mockQueryHandler[queries.GetSchedulingGridQuery, []queries.GetSchedulingGridQueryResponse]{},
	}
}

func (m *handlerMocks) handlers() Handlers {
	return Handlers{
		CreateOrder:           m.createOrder,
		CompletePickTicket:    m.completePickTicket,
		TransitionOrderStatus: m.transition,
		UpdateDeliveryInfo:    m.deliveryInfo,
		OfferSlots:            m.offerSlots,
		ConfirmSlot:           m.confirmSlot,
		ValidateOrderZipCode:  m.zip,
		GetOrder:              m.getOrder,
		GetOrderHistory:       m.history,
		GetSlotCapacity:       m.capacity,
		GetSchedulingGrid:     m.grid,
	}
}
