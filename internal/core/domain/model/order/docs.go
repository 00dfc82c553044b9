// Package order holds the Order aggregate of the consignment fulfillment
// service and the state machine that guards its lifecycle.
//
// An order is created in PAID by payment capture and moves one step at a time:
//
//	PAID -> PENDING_SCHEDULING -> SCHEDULED -> EN_ROUTE -> DELIVERED -> FINALIZED
//
// Two gates guard forward moves. An order cannot leave PAID until all pick
// ticket items are completed, and cannot leave PENDING_SCHEDULING until the
// buyer has confirmed a delivery slot. Staff may roll an order back one step;
// rolling back into PENDING_SCHEDULING releases the confirmed slot. Entering
// or leaving FINALIZED is reserved for supervisors and the finalization sweep.
package order
