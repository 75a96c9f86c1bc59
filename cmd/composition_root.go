package cmd

import (
	"log/slog"
	"os"

	"tradein/internal/adapters/out/carrier"
	"tradein/internal/adapters/out/email"
	"tradein/internal/adapters/out/postgres"
	"tradein/internal/adapters/out/postgres/orderrepo"
	"tradein/internal/core/application/usecases/commands"
	"tradein/internal/core/application/usecases/queries"
	"tradein/internal/core/domain/services"
	"tradein/internal/core/ports"
	"tradein/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application graph. Handlers are constructed
// eagerly so misconfiguration fails at startup rather than on first request.
type CompositionRoot struct {
	gormDB     *gorm.DB
	config     Config
	uowFactory *postgres.GormUnitOfWorkFactory

	logger  *slog.Logger
	writer  commands.OrderWriter
	guard   commands.NotificationGuard
	carrier ports.CarrierClient
}

// NewCompositionRoot builds the shared infrastructure. Carrier and email
// adapters are optional: without credentials the carrier stays nil (tracking
// syncs are skipped) and the notification guard stays disabled (no emails
// are sent).
func NewCompositionRoot(config Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	root := &CompositionRoot{
		gormDB:     gormDB,
		config:     config,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	var orderUoWFactory commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return root.uowFactory.Create()
	})
	writer, err := commands.NewOrderWriter(orderUoWFactory)
	if err != nil {
		return nil, err
	}
	root.writer = writer

	if config.EmailAPIURL != "" && config.EmailAPIKey != "" {
		emails, err := email.NewClient(config.EmailAPIURL, config.EmailAPIKey)
		if err != nil {
			return nil, err
		}
		renderer, err := email.NewTemplateRenderer()
		if err != nil {
			return nil, err
		}
		guard, err := commands.NewNotificationGuard(emails, renderer, writer, config.EmailFrom, logger)
		if err != nil {
			return nil, err
		}
		root.guard = guard
	}

	if config.CarrierAPIURL != "" && config.CarrierAPIKey != "" {
		carrierClient, err := carrier.NewClient(config.CarrierAPIURL, config.CarrierAPIKey)
		if err != nil {
			return nil, err
		}
		root.carrier = carrierClient
	}

	return root, nil
}

// Logger returns the shared structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// OrderWriter returns the shared dual-write engine.
func (c *CompositionRoot) OrderWriter() commands.OrderWriter {
	return c.writer
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() (commands.CreateOrderCommandHandler, error) {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.config.OrderNumberPrefix, c.config.OrderNumberFloor)
}

func (c *CompositionRoot) CreateMarkKitSentCommandHandler() (commands.MarkKitSentCommandHandler, error) {
	return commands.NewMarkKitSentCommandHandler(c.writer)
}

func (c *CompositionRoot) CreateMarkReceivedCommandHandler() (commands.MarkReceivedCommandHandler, error) {
	return commands.NewMarkReceivedCommandHandler(c.writer, c.guard)
}

func (c *CompositionRoot) CreateMarkInspectedCommandHandler() (commands.MarkInspectedCommandHandler, error) {
	return commands.NewMarkInspectedCommandHandler(c.writer)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() (commands.CompleteOrderCommandHandler, error) {
	return commands.NewCompleteOrderCommandHandler(c.writer, c.guard)
}

func (c *CompositionRoot) CreateProposeReOfferCommandHandler() (commands.ProposeReOfferCommandHandler, error) {
	return commands.NewProposeReOfferCommandHandler(c.writer, c.guard)
}

func (c *CompositionRoot) CreateResolveReOfferCommandHandler() (commands.ResolveReOfferCommandHandler, error) {
	return commands.NewResolveReOfferCommandHandler(c.writer)
}

func (c *CompositionRoot) CreateFinalizeAutoRequoteCommandHandler() (commands.FinalizeAutoRequoteCommandHandler, error) {
	return commands.NewFinalizeAutoRequoteCommandHandler(c.writer, c.guard)
}

func (c *CompositionRoot) CreateGenerateReturnLabelCommandHandler() (commands.GenerateReturnLabelCommandHandler, error) {
	return commands.NewGenerateReturnLabelCommandHandler(c.writer)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() (commands.CancelOrderCommandHandler, error) {
	return commands.NewCancelOrderCommandHandler(c.writer, c.guard)
}

func (c *CompositionRoot) CreateSyncTrackingCommandHandler() (commands.SyncTrackingCommandHandler, error) {
	return commands.NewSyncTrackingCommandHandler(
		c.writer,
		c.carrier,
		services.NewTrackingNormalizer(),
		c.guard,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs against a pool-bound order
// repository; each job run opens its own transactions through the handlers.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	syncHandler, err := c.CreateSyncTrackingCommandHandler()
	if err != nil {
		return nil, err
	}
	finalizeHandler, err := c.CreateFinalizeAutoRequoteCommandHandler()
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(
		syncHandler,
		finalizeHandler,
		orderrepo.NewGormOrderRepository(c.gormDB),
		jobs.Schedules{
			TrackingSync:     c.config.TrackingSyncSchedule,
			AutoRequote:      c.config.AutoRequoteSchedule,
			AutoRequoteGrace: c.config.AutoRequoteGrace,
		},
		c.logger,
	), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
