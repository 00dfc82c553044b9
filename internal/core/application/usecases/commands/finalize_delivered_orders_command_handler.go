package commands

import (
	"context"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/metrics"

	"go.uber.org/zap"
)

// FinalizeDeliveredOrdersCommandHandler promotes every delivered order whose
// contest window has elapsed. Each order is handled in its own transaction and
// re-checked under its row lock, so overlapping sweeps and concurrent staff
// actions never finalize an order twice or finalize one that changed since it
// was listed. A failure on one order is logged and the sweep moves on.
type FinalizeDeliveredOrdersCommandHandler struct {
	uowFactory UoWFactory
	policy     services.FinalizationPolicy
	notifier   ports.Notifier
	logger     *zap.Logger
}

func NewFinalizeDeliveredOrdersCommandHandler(
	uowFactory UoWFactory,
	policy services.FinalizationPolicy,
	notifier ports.Notifier,
	logger *zap.Logger,
) FinalizeDeliveredOrdersCommandHandler {
	return FinalizeDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		notifier:   notifier,
		logger:     nopLoggerIfNil(logger).With(zap.String("component", "finalization-sweep")),
	}
}

// Handle returns the IDs of the orders finalized by this tick.
func (h *FinalizeDeliveredOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd FinalizeDeliveredOrdersCommand,
) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() {
		metrics.FinalizationSweepDuration.Observe(time.Since(started).Seconds())
	}()

	candidates, err := h.listCandidates(ctx, cmd)
	if err != nil {
		return nil, err
	}

	finalized := make([]kernel.UUID, 0, len(candidates))
	for _, id := range candidates {
		if ctx.Err() != nil {
			return finalized, ctx.Err()
		}

		ok, err := h.finalizeOne(ctx, id, cmd.At())
		if err != nil {
			h.logger.Warn("order skipped", zap.Stringer("orderId", id), zap.Error(err))
			continue
		}
		if ok {
			finalized = append(finalized, id)
		}
	}

	if len(finalized) > 0 {
		h.logger.Info("orders finalized", zap.Int("count", len(finalized)))
	}
	return finalized, nil
}

func (h *FinalizeDeliveredOrdersCommandHandler) listCandidates(
	ctx context.Context,
	cmd FinalizeDeliveredOrdersCommand,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.OrderRepository().ListFinalizationCandidates(ctx, h.policy.Cutoff(cmd.At()), cmd.BatchSize())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func (h *FinalizeDeliveredOrdersCommandHandler) finalizeOne(ctx context.Context, id kernel.UUID, at time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}

	change, ok, err := h.policy.Finalize(o, at)
	if err != nil || !ok {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.TransitionHistoryRepository().Append(ctx, change); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	metrics.OrdersFinalizedTotal.Inc()
	metrics.StatusTransitionsTotal.WithLabelValues(change.From.String(), change.To.String()).Inc()
	if n, ok := statusNotification(o, change); ok {
		publish(ctx, h.notifier, h.logger, n)
	}
	return true, nil
}
