package commands

import (
	"errors"
	"time"

	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

const DefaultFinalizationBatchSize = 500

var ErrFinalizeDeliveredOrdersCommandIsNotConstructed = errors.New(
	"FinalizeDeliveredOrdersCommand must be created via NewFinalizeDeliveredOrdersCommand constructor",
)

// FinalizeDeliveredOrdersCommand is one tick of the finalization sweep
// evaluated at a fixed instant.
type FinalizeDeliveredOrdersCommand struct { //nolint:recvcheck //using for validation
	at        time.Time
	batchSize int

	guard guard.ConstructorGuard
}

func NewFinalizeDeliveredOrdersCommand(at time.Time, batchSize int) (FinalizeDeliveredOrdersCommand, error) {
	if at.IsZero() {
		return FinalizeDeliveredOrdersCommand{}, errs.NewValueIsRequiredError("at")
	}
	if batchSize <= 0 {
		return FinalizeDeliveredOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return FinalizeDeliveredOrdersCommand{
		at:        at,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c FinalizeDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeDeliveredOrdersCommandIsNotConstructed)
}

func (c FinalizeDeliveredOrdersCommand) At() time.Time  { return c.at }
func (c FinalizeDeliveredOrdersCommand) BatchSize() int { return c.batchSize }
