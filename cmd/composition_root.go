package cmd

import (
	"database/sql"
	"fmt"
	"net/http"

	httpin "consignment/internal/adapters/in/http"
	kafkain "consignment/internal/adapters/in/kafka"
	"consignment/internal/adapters/out/postgres"
	"consignment/internal/adapters/out/zipcode"
	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/application/usecases/queries"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"
	"consignment/internal/jobs"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg          Config
	gormDB       *gorm.DB
	sqlDB        *sql.DB
	uowFactory   *postgres.GormUnitOfWorkFactory
	clock        ports.Clock
	scheduler    *services.SlotScheduler
	policy       services.FinalizationPolicy
	notifier     ports.Notifier
	zipValidator ports.ZipCodeValidator
	logger       *zap.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	clock ports.Clock,
	notifier ports.Notifier,
	logger *zap.Logger,
) (CompositionRoot, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	calendar, err := slot.NewCalendar(cfg.DeliveryWindows, cfg.SchedulingLocation, cfg.SchedulingHorizonDays, cfg.MaxCapacityPerWindow)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid scheduling configuration: %w", err)
	}
	scheduler, err := services.NewSlotScheduler(calendar)
	if err != nil {
		return CompositionRoot{}, err
	}
	policy, err := services.NewFinalizationPolicy(cfg.ContestWindow)
	if err != nil {
		return CompositionRoot{}, err
	}

	zipValidator, err := newZipCodeValidator(cfg)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:          cfg,
		gormDB:       gormDB,
		sqlDB:        sqlDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:        clock,
		scheduler:    scheduler,
		policy:       policy,
		notifier:     notifier,
		zipValidator: zipValidator,
		logger:       logger,
	}, nil
}

func newZipCodeValidator(cfg Config) (ports.ZipCodeValidator, error) {
	if cfg.ZipServiceURL == "" {
		return zipcode.NewPatternValidator(cfg.ZipServiceablePrefixes), nil
	}
	return zipcode.NewHTTPValidator(cfg.ZipServiceURL, &http.Client{Timeout: zipcode.DefaultHTTPTimeout})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompletePickTicketCommandHandler() commands.CompletePickTicketCommandHandler {
	return commands.NewCompletePickTicketCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.fullUoWFactory(), c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryInfoCommandHandler() commands.UpdateDeliveryInfoCommandHandler {
	return commands.NewUpdateDeliveryInfoCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateOfferSlotsCommandHandler() commands.OfferSlotsCommandHandler {
	return commands.NewOfferSlotsCommandHandler(c.orderUoWFactory(), c.scheduler, c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateConfirmSlotCommandHandler() commands.ConfirmSlotCommandHandler {
	return commands.NewConfirmSlotCommandHandler(c.fullUoWFactory(), c.scheduler, c.clock, c.logger)
}

func (c *CompositionRoot) CreateValidateOrderZipCodeCommandHandler() *commands.ValidateOrderZipCodeCommandHandler {
	return commands.NewValidateOrderZipCodeCommandHandler(c.orderUoWFactory(), c.zipValidator, c.cfg.ZipValidationTimeout, c.logger)
}

func (c *CompositionRoot) CreateFinalizeDeliveredOrdersCommandHandler() commands.FinalizeDeliveredOrdersCommandHandler {
	return commands.NewFinalizeDeliveredOrdersCommandHandler(c.fullUoWFactory(), c.policy, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSetOrderContestedCommandHandler() commands.SetOrderContestedCommandHandler {
	return commands.NewSetOrderContestedCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.sqlDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.sqlDB)
}

func (c *CompositionRoot) CreateGetSlotCapacityQueryHandler() queries.GetSlotCapacityQueryHandler {
	return queries.NewGetSlotCapacityQueryHandler(c.sqlDB, c.scheduler)
}

func (c *CompositionRoot) CreateGetSchedulingGridQueryHandler() queries.GetSchedulingGridQueryHandler {
	return queries.NewGetSchedulingGridQueryHandler(c.sqlDB, c.scheduler, c.clock)
}

// CreateHTTPServer wires every use case served over HTTP.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	completePickTicket := c.CreateCompletePickTicketCommandHandler()
	transition := c.CreateTransitionOrderStatusCommandHandler()
	deliveryInfo := c.CreateUpdateDeliveryInfoCommandHandler()
	offerSlots := c.CreateOfferSlotsCommandHandler()
	confirmSlot := c.CreateConfirmSlotCommandHandler()

	return httpin.NewServer(httpin.Handlers{
		CreateOrder:           &createOrder,
		CompletePickTicket:    &completePickTicket,
		TransitionOrderStatus: &transition,
		UpdateDeliveryInfo:    &deliveryInfo,
		OfferSlots:            &offerSlots,
		ConfirmSlot:           &confirmSlot,
		ValidateOrderZipCode:  c.CreateValidateOrderZipCodeCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetOrderHistory:       c.CreateGetOrderHistoryQueryHandler(),
		GetSlotCapacity:       c.CreateGetSlotCapacityQueryHandler(),
		GetSchedulingGrid:     c.CreateGetSchedulingGridQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	finalize := c.CreateFinalizeDeliveredOrdersCommandHandler()
	job := jobs.NewFinalizationJob(&finalize, c.clock, c.cfg.FinalizationSchedule, c.cfg.FinalizationBatchSize, c.logger)
	return jobs.NewJobManager(job, c.logger)
}

func (c *CompositionRoot) CreateDisputeConsumer(reader *kafka.Reader) *kafkain.DisputeConsumer {
	setContested := c.CreateSetOrderContestedCommandHandler()
	return kafkain.NewDisputeConsumer(reader, &setContested, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
