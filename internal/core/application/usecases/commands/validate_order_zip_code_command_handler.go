package commands

import (
	"context"
	"time"

	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultZipValidationTimeout = 3 * time.Second

	zipStoreTimeout = 5 * time.Second
)

// ValidateOrderZipCodeCommandHandler runs the serviceability check the first
// time an order is shown to staff. Concurrent first views of one order share a
// single validator call. The validator is called outside any transaction; the
// answer is stored only if the order is still unchecked. Validator failures
// are reported as ZipUnknown and not stored, so a later view retries. The
// shared call is detached from the caller that started it: one cancelled
// request does not fail the others waiting on the same order.
type ValidateOrderZipCodeCommandHandler struct {
	uowFactory OrderUoWFactory
	validator  ports.ZipCodeValidator
	timeout    time.Duration
	group      *singleflight.Group
	logger     *zap.Logger
}

func NewValidateOrderZipCodeCommandHandler(
	uowFactory OrderUoWFactory,
	validator ports.ZipCodeValidator,
	timeout time.Duration,
	logger *zap.Logger,
) *ValidateOrderZipCodeCommandHandler {
	if timeout <= 0 {
		timeout = DefaultZipValidationTimeout
	}
	return &ValidateOrderZipCodeCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
		timeout:    timeout,
		group:      &singleflight.Group{},
		logger:     nopLoggerIfNil(logger).With(zap.String("component", "zip-validation")),
	}
}

func (h *ValidateOrderZipCodeCommandHandler) Handle(ctx context.Context, cmd ValidateOrderZipCodeCommand) (order.ZipStatus, error) {
	if err := cmd.Validate(); err != nil {
		return order.ZipUnknown, err
	}

	v, err, _ := h.group.Do(cmd.OrderID().String(), func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout+zipStoreTimeout)
		defer cancel()
		return h.validate(sharedCtx, cmd)
	})
	if err != nil {
		return order.ZipUnknown, err
	}
	return v.(order.ZipStatus), nil
}

func (h *ValidateOrderZipCodeCommandHandler) validate(ctx context.Context, cmd ValidateOrderZipCodeCommand) (order.ZipStatus, error) {
	current, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return order.ZipUnknown, err
	}
	if current.ZipStatus() != order.ZipUnchecked {
		return current.ZipStatus(), nil
	}

	result := order.ZipInvalid
	if postalCode := current.ShippingAddress().PostalCode(); postalCode != "" {
		callCtx, cancel := context.WithTimeout(ctx, h.timeout)
		valid, err := h.validator.Validate(callCtx, postalCode)
		cancel()
		if err != nil {
			h.logger.Warn("zip validation unavailable", zap.Stringer("orderId", cmd.OrderID()), zap.Error(err))
			return order.ZipUnknown, nil
		}
		result = order.ZipStatusFromResult(valid)
	}

	if err = h.store(ctx, cmd, result); err != nil {
		h.logger.Warn("zip validation result not stored", zap.Stringer("orderId", cmd.OrderID()), zap.Error(err))
	}
	return result, nil
}

func (h *ValidateOrderZipCodeCommandHandler) store(ctx context.Context, cmd ValidateOrderZipCodeCommand, result order.ZipStatus) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if o.ZipStatus() != order.ZipUnchecked {
		return nil
	}

	if err = o.RecordZipStatus(result); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
