package services_test

import (
	"testing"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"

	"github.com/stretchr/testify/require"
)

// 08:00 UTC on Monday 2025-01-20.
var now = time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)

func newCalendar(t *testing.T, maxCapacity int) *slot.Calendar {
	t.Helper()
	c, err := slot.NewCalendar(slot.DefaultWindows(), time.UTC, slot.DefaultHorizonDays, maxCapacity)
	require.NoError(t, err)
	return c
}

func mustSlot(t *testing.T, date, window string) slot.Slot {
	t.Helper()
	d, err := slot.ParseDate(date)
	require.NoError(t, err)
	s, err := slot.NewSlot(d, window)
	require.NoError(t, err)
	return s
}

func staff(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor("staff-1", kernel.RoleStaff)
	require.NoError(t, err)
	return a
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	amount, err := kernel.NewMoney(4900, "USD")
	require.NoError(t, err)
	address, err := kernel.NewLegacyAddress("12 Elm St, Austin TX 73301")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		amount, address, kernel.SystemActor("payment-capture"), now)
	require.NoError(t, err)

	_, err = o.CompletePickTicket(order.ChecklistItems()...)
	require.NoError(t, err)
	_, err = o.Transition(order.PendingScheduling, staff(t), now)
	require.NoError(t, err)
	return o
}
