package commands_test

import (
	"context"
	"testing"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) CountConfirmedInSlot(ctx context.Context, s slot.Slot) (int, error) {
	args := m.Called(ctx, s)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) Occupancy(ctx context.Context, from, to slot.Date) (map[slot.Slot]int, error) {
	args := m.Called(ctx, from, to)
	occupancy, _ := args.Get(0).(map[slot.Slot]int)
	return occupancy, args.Error(1)
}

func (m *MockOrderRepository) ListFinalizationCandidates(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, cutoff, limit)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, change order.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TransitionHistoryRepository() ports.TransitionHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.TransitionHistoryRepository)
}

func (m *MockUoW) LockSlot(ctx context.Context, s slot.Slot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// 08:00 UTC on Monday 2025-01-20.
var now = time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)

var fixedClock = ports.ClockFunc(func() time.Time { return now })

func newActor(t *testing.T, id string, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func staffActor(t *testing.T) kernel.Actor {
	return newActor(t, "staff-7", kernel.RoleStaff)
}

func mustSlot(t *testing.T, date, window string) slot.Slot {
	t.Helper()
	d, err := slot.ParseDate(date)
	require.NoError(t, err)
	s, err := slot.NewSlot(d, window)
	require.NoError(t, err)
	return s
}

func newScheduler(t *testing.T, maxCapacity int) *services.SlotScheduler {
	t.Helper()
	c, err := slot.NewCalendar(slot.DefaultWindows(), time.UTC, slot.DefaultHorizonDays, maxCapacity)
	require.NoError(t, err)
	s, err := services.NewSlotScheduler(c)
	require.NoError(t, err)
	return s
}

func newPaidOrder(t *testing.T) *order.Order {
	t.Helper()
	amount, err := kernel.NewMoney(125050, "USD")
	require.NoError(t, err)
	address, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701", "US")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		amount, address, kernel.SystemActor("payment-capture"), now.Add(-72*time.Hour))
	require.NoError(t, err)
	return o
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newPaidOrder(t)
	_, err := o.CompletePickTicket(order.ChecklistItems()...)
	require.NoError(t, err)
	_, err = o.Transition(order.PendingScheduling, staffActor(t), now.Add(-48*time.Hour))
	require.NoError(t, err)
	return o
}

// newOfferedOrder returns a PENDING_SCHEDULING order with two offered slots on
// Tuesday 2025-01-21.
func newOfferedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.OfferSlots([]slot.Slot{
		mustSlot(t, "2025-01-21", "morning"),
		mustSlot(t, "2025-01-21", "evening"),
	}))
	return o
}

func newDeliveredOrder(t *testing.T, deliveredAt time.Time) *order.Order {
	t.Helper()
	o := newOfferedOrder(t)
	require.NoError(t, newScheduler(t, 4).Confirm(o, mustSlot(t, "2025-01-21", "morning"), 0, now))
	for _, next := range []order.Status{order.Scheduled, order.EnRoute, order.Delivered} {
		_, err := o.Transition(next, staffActor(t), deliveredAt)
		require.NoError(t, err)
	}
	return o
}
