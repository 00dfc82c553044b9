package http

import (
	"errors"
	"net/http"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/application/usecases/queries"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/generated/servers"
	"consignment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http")),
	}
}

// CreateOrder handles POST /orders - registers a paid order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := authorize(ctx, "register an order", kernel.RoleStaff, kernel.RoleSupervisor, kernel.RoleSystem)
	if err != nil {
		return err
	}

	var body servers.NewOrder
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.Id != nil {
		if orderID, err = toKernelUUID(*body.Id); err != nil {
			return err
		}
	}
	listingID, err := toKernelUUID(body.ListingId)
	if err != nil {
		return err
	}
	buyerID, err := toKernelUUID(body.BuyerId)
	if err != nil {
		return err
	}
	sellerID, err := toKernelUUID(body.SellerId)
	if err != nil {
		return err
	}
	amount, err := kernel.NewMoney(body.Amount.MinorUnits, body.Amount.Currency)
	if err != nil {
		return err
	}
	address, err := toAddress(body.ShippingAddress)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, listingID, buyerID, sellerID, amount, address, actor)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	view, err := s.readOrder(ctx, orderID)
	if err != nil {
		return err
	}
	ctx.Response().Header().Set(echo.HeaderLocation, "/orders/"+orderID.String())
	return ctx.JSON(http.StatusCreated, fromOrder(view))
}

// GetOrder handles GET /orders/{orderId}. The first staff view of an order
// runs the zip code check; buyers may read their own orders.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := authorize(ctx, "view an order",
		kernel.RoleStaff, kernel.RoleSupervisor, kernel.RoleSystem, kernel.RoleBuyer)
	if err != nil {
		return err
	}
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return err
	}

	zipStatus := order.ZipUnknown
	if actor.IsStaff() {
		if zipStatus, err = s.validateZipCode(ctx, orderID); err != nil {
			return err
		}
	}

	view, err := s.readOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if actor.Role() == kernel.RoleBuyer && actor.ID() != view.BuyerID.String() {
		return order.NewInsufficientPrivilegeError(actor.ID(), "view this order")
	}

	resp := fromOrder(view)
	if actor.IsStaff() && view.ZipStatus == order.ZipUnchecked {
		resp.ZipStatus = servers.OrderZipStatus(zipStatus.String())
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetOrderHistory handles GET /orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderId servers.OrderId) error {
	if _, err := authorize(ctx, "view order history", staffRoles...); err != nil {
		return err
	}
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return err
	}
	entries, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, fromHistory(entries))
}

// CompletePickTicket handles POST /orders/{orderId}/pick-ticket.
func (s *Server) CompletePickTicket(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := authorize(ctx, "complete a pick ticket", staffRoles...)
	if err != nil {
		return err
	}
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return err
	}

	var body servers.PickTicketUpdate
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	items := make([]string, len(body.Items))
	for i, item := range body.Items {
		items[i] = string(item)
	}

	cmd, err := commands.NewCompletePickTicketCommand(orderID, items, actor)
	if err != nil {
		return err
	}
	if err = s.handlers.CompletePickTicket.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	view, err := s.readOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fromPickTicket(view.PickTicket))
}

// ChangeOrderStatus handles PATCH /orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := authorize(ctx, "change order status", kernel.RoleStaff, kernel.RoleSupervisor, kernel.RoleSystem)
	if err != nil {
		return err
	}
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return err
	}

	var body servers.StatusChange
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	target, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, target, actor, body.ExpectedVersion)
	if err != nil {
		return err
	}
	if err = s.handlers.TransitionOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// UpdateDeliveryInfo handles PATCH /orders/{orderId}/delivery-info.
func (s *Server) UpdateDeliveryInfo(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := authorize(ctx, "update delivery info", staffRoles...)
	if err != nil {
		return err
	}
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return err
	}

	var body servers.DeliveryInfo
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewUpdateDeliveryInfoCommand(
		orderID, body.DeliveryAttempts, body.LastDeliveryAttempt, body.DeliveryNotes, actor,
	)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateDeliveryInfo.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// OfferSlots handles POST /orders/{orderId}/slots/offer.
func (s *Server) OfferSlots(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := authorize(ctx, "offer delivery slots", staffRoles...)
	if err != nil {
		return err
	}
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return err
	}

	var body servers.SlotOffer
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	candidates, err := toSlots(body.Candidates)
	if err != nil {
		return err
	}
	override := body.Override != nil && *body.Override

	cmd, err := commands.NewOfferSlotsCommand(orderID, candidates, override, actor)
	if err != nil {
		return err
	}
	if err = s.handlers.OfferSlots.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	view, err := s.readOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.SlotOfferResult{
		OrderId:      view.ID.Bytes(),
		OfferedSlots: fromSlots(view.OfferedSlots),
	})
}

// ConfirmSlot handles POST /orders/{orderId}/slots/confirm. Buyers confirm
// their own orders; staff may confirm on a buyer's behalf.
func (s *Server) ConfirmSlot(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := authorize(ctx, "confirm a delivery slot",
		kernel.RoleStaff, kernel.RoleSupervisor, kernel.RoleBuyer)
	if err != nil {
		return err
	}
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return err
	}

	var body servers.Slot
	if err = ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	chosen, err := toSlot(body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmSlotCommand(orderID, chosen, actor)
	if err != nil {
		return err
	}
	if err = s.handlers.ConfirmSlot.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// GetSlotCapacity handles GET /orders/{orderId}/slots/capacity.
func (s *Server) GetSlotCapacity(ctx echo.Context, orderId servers.OrderId, params servers.GetSlotCapacityParams) error {
	if _, err := authorize(ctx, "view slot capacity", staffRoles...); err != nil {
		return err
	}
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return err
	}
	requested, err := toDomainSlot(params.Date, params.Window)
	if err != nil {
		return err
	}

	query, err := queries.NewGetSlotCapacityQuery(orderID, requested)
	if err != nil {
		return err
	}
	capacity, err := s.handlers.GetSlotCapacity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.SlotCapacity{
		Date:        fromDate(capacity.Slot.Date()),
		WindowId:    capacity.Slot.WindowID(),
		Occupied:    capacity.Occupied,
		Available:   capacity.Available,
		MaxCapacity: capacity.MaxCapacity,
	})
}

// GetSchedulingGrid handles GET /slots/grid.
func (s *Server) GetSchedulingGrid(ctx echo.Context) error {
	if _, err := authorize(ctx, "view the scheduling grid", staffRoles...); err != nil {
		return err
	}

	cells, err := s.handlers.GetSchedulingGrid.Handle(ctx.Request().Context(), queries.NewGetSchedulingGridQuery())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, fromGrid(cells))
}

// validateZipCode never fails the request unless the order does not exist.
func (s *Server) validateZipCode(ctx echo.Context, orderID kernel.UUID) (order.ZipStatus, error) {
	cmd, err := commands.NewValidateOrderZipCodeCommand(orderID)
	if err != nil {
		return order.ZipUnknown, err
	}

	status, err := s.handlers.ValidateOrderZipCode.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return order.ZipUnknown, err
		}
		s.logger.Warn("zip validation skipped", zap.Stringer("orderId", orderID), zap.Error(err))
		return order.ZipUnknown, nil
	}
	return status, nil
}

func (s *Server) readOrder(ctx echo.Context, orderID kernel.UUID) (queries.GetOrderQueryResponse, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	return s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
}

func (s *Server) respondWithOrder(ctx echo.Context, code int, orderID kernel.UUID) error {
	view, err := s.readOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return ctx.JSON(code, fromOrder(view))
}

var staffRoles = []kernel.Role{kernel.RoleStaff, kernel.RoleSupervisor}

// authorize returns the caller when their role is one of allowed.
func authorize(ctx echo.Context, action string, allowed ...kernel.Role) (kernel.Actor, error) {
	actor, err := ActorFrom(ctx)
	if err != nil {
		return kernel.Actor{}, err
	}
	for _, role := range allowed {
		if actor.Role() == role {
			return actor, nil
		}
	}
	return kernel.Actor{}, order.NewInsufficientPrivilegeError(actor.ID(), action)
}
