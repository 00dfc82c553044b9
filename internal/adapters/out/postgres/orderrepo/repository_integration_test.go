package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"consignment/internal/adapters/out/postgres/migrations"
	"consignment/internal/adapters/out/postgres/orderrepo"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/order"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the order repository against a
// real PostgreSQL with the production migrations applied.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(ctx, sqlDB))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	pickup := now.Add(25 * time.Hour)
	delivery := now.Add(28 * time.Hour)
	lastAttempt := now.Add(-time.Hour)
	confirmed := suite.mustSlot("2025-01-21", "morning")

	ticket, err := order.NewPickTicket(order.ChecklistItems()...)
	suite.Require().NoError(err)

	o := suite.newOrder(func(s *order.Snapshot) {
		s.Status = order.Scheduled
		s.PickTicket = ticket
		s.ConfirmedSlot = confirmed
		s.ScheduledPickupTime = &pickup
		s.EstimatedDeliveryTime = &delivery
		s.DeliveryAttempts = 2
		s.LastDeliveryAttempt = &lastAttempt
		s.DeliveryNotes = "leave with the concierge"
		s.ZipStatus = order.ZipValid
		s.Version = 3
	})

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(o.IsEqual(got))
	suite.Equal(o.ListingID(), got.ListingID())
	suite.Equal(o.BuyerID(), got.BuyerID())
	suite.Equal(o.SellerID(), got.SellerID())
	suite.Equal(o.Amount().MinorUnits(), got.Amount().MinorUnits())
	suite.Equal("USD", got.Amount().Currency())
	suite.Equal("62701", got.ShippingAddress().PostalCode())
	suite.Equal("Springfield", got.ShippingAddress().City())
	suite.Equal(order.Scheduled, got.Status())
	suite.True(got.PickTicketCompleted())
	suite.Equal(confirmed, got.ConfirmedSlot())
	suite.Empty(got.OfferedSlots())
	suite.Require().NotNil(got.ScheduledPickupTime())
	suite.True(pickup.Equal(*got.ScheduledPickupTime()))
	suite.Require().NotNil(got.EstimatedDeliveryTime())
	suite.True(delivery.Equal(*got.EstimatedDeliveryTime()))
	suite.Equal(2, got.DeliveryAttempts())
	suite.Require().NotNil(got.LastDeliveryAttempt())
	suite.True(lastAttempt.Equal(*got.LastDeliveryAttempt()))
	suite.Equal("leave with the concierge", got.DeliveryNotes())
	suite.Equal(order.ZipValid, got.ZipStatus())
	suite.Equal(int64(3), got.Version())
	suite.True(now.Equal(got.StatusUpdatedAt()))
	suite.Equal("staff-7", got.StatusUpdatedBy())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_OfferedSlotsAndPartialTicket() {
	ctx := context.Background()
	offered := []slot.Slot{
		suite.mustSlot("2025-01-21", "morning"),
		suite.mustSlot("2025-01-22", "evening"),
	}
	ticket, err := order.NewPickTicket(order.ItemVerifyCondition, order.ItemCheckDamage)
	suite.Require().NoError(err)

	o := suite.newOrder(func(s *order.Snapshot) {
		s.Status = order.PendingScheduling
		s.PickTicket = ticket
		s.OfferedSlots = offered
	})
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(offered, got.OfferedSlots())
	suite.True(got.PickTicket().Has(order.ItemVerifyCondition))
	suite.True(got.PickTicket().Has(order.ItemCheckDamage))
	suite.False(got.PickTicketCompleted())
	suite.True(got.ConfirmedSlot().IsZero())
	suite.Nil(got.ScheduledPickupTime())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_LegacyAddress() {
	ctx := context.Background()
	legacy, err := kernel.NewLegacyAddress("12 Elm Street, Boston MA 02118")
	suite.Require().NoError(err)

	o := suite.newOrder(func(s *order.Snapshot) { s.ShippingAddress = legacy })
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.ShippingAddress().IsLegacy())
	suite.Equal("12 Elm Street, Boston MA 02118", got.ShippingAddress().Raw())
	suite.Equal("02118", got.ShippingAddress().PostalCode())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsInvalid() {
	ctx := context.Background()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.repository.Add(ctx, o)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AdvancesVersion() {
	ctx := context.Background()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.True(o.SetContested(true))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(int64(1), o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.IsContested())
	suite.Equal(int64(1), got.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsOptionalColumns() {
	ctx := context.Background()
	o := suite.newOrder(func(s *order.Snapshot) {
		s.Status = order.PendingScheduling
		s.OfferedSlots = []slot.Slot{
			suite.mustSlot("2025-01-21", "morning"),
			suite.mustSlot("2025-01-21", "evening"),
		}
		ticket, err := order.NewPickTicket(order.ChecklistItems()...)
		suite.Require().NoError(err)
		s.PickTicket = ticket
	})
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.Transition(order.Paid, suite.supervisor(), now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, got.Status())
	suite.Empty(got.OfferedSlots())
	suite.Equal("supervisor-1", got.StatusUpdatedBy())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsStaleOrderState() {
	ctx := context.Background()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	first.SetContested(true)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	second.SetContested(true)
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrStaleOrderState)
	suite.Equal(int64(0), second.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	o := suite.newOrder(nil)
	err := suite.repository.Update(context.Background(), o)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_LockedRow_FailsFast() {
	ctx := context.Background()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	holder := suite.db.Begin()
	defer holder.Rollback()
	_, err := orderrepo.NewGormOrderRepository(holder, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	contender := suite.db.Begin()
	defer contender.Rollback()

	start := time.Now()
	_, err = orderrepo.NewGormOrderRepository(contender, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, order.ErrStaleOrderState)
	suite.Less(time.Since(start), 5*time.Second)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_NotFound() {
	tx := suite.db.Begin()
	defer tx.Rollback()

	_, err := orderrepo.NewGormOrderRepository(tx, suite.tracker).GetForUpdate(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountConfirmedInSlotAndOccupancy() {
	ctx := context.Background()
	morning := suite.mustSlot("2025-01-21", "morning")
	evening := suite.mustSlot("2025-01-22", "evening")
	outside := suite.mustSlot("2025-01-30", "morning")

	for _, s := range []slot.Slot{morning, morning, evening, outside} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newScheduledOrder(s)))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(nil)))

	count, err := suite.repository.CountConfirmedInSlot(ctx, morning)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	count, err = suite.repository.CountConfirmedInSlot(ctx, suite.mustSlot("2025-01-21", "afternoon"))
	suite.Require().NoError(err)
	suite.Equal(0, count)

	from, err := slot.ParseDate("2025-01-20")
	suite.Require().NoError(err)
	occupancy, err := suite.repository.Occupancy(ctx, from, from.AddDays(7))
	suite.Require().NoError(err)
	suite.Equal(map[slot.Slot]int{morning: 2, evening: 1}, occupancy)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestOccupancy_InvertedRange() {
	from, err := slot.ParseDate("2025-01-20")
	suite.Require().NoError(err)

	_, err = suite.repository.Occupancy(context.Background(), from, from.AddDays(-1))
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListFinalizationCandidates() {
	ctx := context.Background()
	s := suite.mustSlot("2025-01-17", "morning")

	older := suite.newDeliveredOrder(s, now.Add(-time.Hour), false)
	atCutoff := suite.newDeliveredOrder(s, now, false)
	tooRecent := suite.newDeliveredOrder(s, now.Add(time.Second), false)
	contested := suite.newDeliveredOrder(s, now.Add(-2*time.Hour), true)
	enRoute := suite.newScheduledOrder(s)

	for _, o := range []*order.Order{older, atCutoff, tooRecent, contested, enRoute} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	ids, err := suite.repository.ListFinalizationCandidates(ctx, now, 10)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{older.ID(), atCutoff.ID()}, ids)

	ids, err = suite.repository.ListFinalizationCandidates(ctx, now, 1)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{older.ID()}, ids)

	_, err = suite.repository.ListFinalizationCandidates(ctx, now, 0)
	suite.ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(mutate func(s *order.Snapshot)) *order.Order {
	amount, err := kernel.NewMoney(125050, "USD")
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701", "US")
	suite.Require().NoError(err)
	ticket, err := order.NewPickTicket()
	suite.Require().NoError(err)

	s := order.Snapshot{
		ID:              kernel.NewUUID(),
		ListingID:       kernel.NewUUID(),
		BuyerID:         kernel.NewUUID(),
		SellerID:        kernel.NewUUID(),
		Amount:          amount,
		ShippingAddress: address,
		Status:          order.Paid,
		StatusUpdatedAt: now,
		StatusUpdatedBy: "staff-7",
		PickTicket:      ticket,
		ZipStatus:       order.ZipUnchecked,
		CreatedAt:       now.Add(-72 * time.Hour),
	}
	if mutate != nil {
		mutate(&s)
	}

	o, err := order.RestoreOrder(s)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) newScheduledOrder(confirmed slot.Slot) *order.Order {
	return suite.newOrder(func(s *order.Snapshot) {
		s.Status = order.Scheduled
		s.ConfirmedSlot = confirmed
	})
}

func (suite *OrderRepositoryIntegrationTestSuite) newDeliveredOrder(
	confirmed slot.Slot, deliveredAt time.Time, contested bool,
) *order.Order {
	return suite.newOrder(func(s *order.Snapshot) {
		s.Status = order.Delivered
		s.ConfirmedSlot = confirmed
		s.StatusUpdatedAt = deliveredAt
		s.Contested = contested
	})
}

func (suite *OrderRepositoryIntegrationTestSuite) mustSlot(date, window string) slot.Slot {
	d, err := slot.ParseDate(date)
	suite.Require().NoError(err)
	s, err := slot.NewSlot(d, window)
	suite.Require().NoError(err)
	return s
}

func (suite *OrderRepositoryIntegrationTestSuite) supervisor() kernel.Actor {
	a, err := kernel.NewActor("supervisor-1", kernel.RoleSupervisor)
	suite.Require().NoError(err)
	return a
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
