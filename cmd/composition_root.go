package cmd

import (
	"log/slog"

	"afrimercato/internal/adapters/in/http"
	"afrimercato/internal/adapters/out/geo"
	"afrimercato/internal/adapters/out/notify"
	"afrimercato/internal/adapters/out/payment"
	"afrimercato/internal/adapters/out/postgres"
	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/application/usecases/queries"
	"afrimercato/internal/core/domain/services"
	"afrimercato/internal/core/ports"
	"afrimercato/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
// Handlers are created on demand; the shared pieces (db, uow factory,
// collaborators) live here.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	dispatcher  services.Dispatcher
	snapshotter services.CatalogSnapshotter
	notifier    ports.Notifier
	payments    ports.PaymentGateway
	geoService  ports.GeoService
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:      logger,
		dispatcher:  services.NewDispatcher(services.LeastRecentlyAssigned),
		snapshotter: services.NewCatalogSnapshotter(),
		notifier:    notify.NewSlogNotifier(logger),
		payments:    payment.NewSandboxGateway(logger),
		geoService:  geo.NewOpenAreaService(),
	}
}

func (c *CompositionRoot) CreateSubmitVendorCommandHandler() commands.SubmitVendorCommandHandler {
	return commands.NewSubmitVendorCommandHandler(c.vendorUoWFactory())
}

func (c *CompositionRoot) CreateDecideVendorCommandHandler() commands.DecideVendorCommandHandler {
	return commands.NewDecideVendorCommandHandler(c.vendorUoWFactory())
}

func (c *CompositionRoot) CreateSuspendVendorCommandHandler() commands.SuspendVendorCommandHandler {
	return commands.NewSuspendVendorCommandHandler(c.vendorUoWFactory())
}

func (c *CompositionRoot) CreateRegisterWorkerCommandHandler() commands.RegisterWorkerCommandHandler {
	return commands.NewRegisterWorkerCommandHandler(c.workerUoWFactory())
}

func (c *CompositionRoot) CreateSetWorkerStatusCommandHandler() commands.SetWorkerStatusCommandHandler {
	return commands.NewSetWorkerStatusCommandHandler(
		c.dispatchUoWFactory(), c.dispatcher, c.geoService, c.notifier)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(
		c.placementUoWFactory(), c.snapshotter, c.payments, c.notifier)
}

func (c *CompositionRoot) CreateRespondToOrderCommandHandler() commands.RespondToOrderCommandHandler {
	return commands.NewRespondToOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAssignPickerCommandHandler() commands.AssignPickerCommandHandler {
	return commands.NewAssignPickerCommandHandler(
		c.dispatchUoWFactory(), c.dispatcher, c.notifier)
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	return commands.NewAssignRiderCommandHandler(
		c.dispatchUoWFactory(), c.dispatcher, c.geoService, c.notifier)
}

func (c *CompositionRoot) CreateStartPickingCommandHandler() commands.StartPickingCommandHandler {
	return commands.NewStartPickingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePickItemCommandHandler() commands.PickItemCommandHandler {
	return commands.NewPickItemCommandHandler(c.dispatchUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReportItemIssueCommandHandler() commands.ReportItemIssueCommandHandler {
	return commands.NewReportItemIssueCommandHandler(
		c.substitutionUoWFactory(), c.notifier, c.config.ProposalTTL)
}

func (c *CompositionRoot) CreateResolveSubstitutionCommandHandler() commands.ResolveSubstitutionCommandHandler {
	return commands.NewResolveSubstitutionCommandHandler(c.fulfillmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.dispatchUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(
		c.dispatchUoWFactory(), c.payments, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateExpireSubstitutionsCommandHandler() commands.ExpireSubstitutionsCommandHandler {
	return commands.NewExpireSubstitutionsCommandHandler(c.fulfillmentUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingVendorsQueryHandler() queries.GetPendingVendorsQueryHandler {
	return queries.NewGetPendingVendorsQueryHandler(c.gormDB)
}

// CreateServer builds the HTTP server with every handler wired.
func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(
		c.CreateSubmitVendorCommandHandler(),
		c.CreateDecideVendorCommandHandler(),
		c.CreateSuspendVendorCommandHandler(),
		c.CreateRegisterWorkerCommandHandler(),
		c.CreateSetWorkerStatusCommandHandler(),
		c.CreatePlaceOrderCommandHandler(),
		c.CreateRespondToOrderCommandHandler(),
		c.CreateAssignPickerCommandHandler(),
		c.CreateAssignRiderCommandHandler(),
		c.CreateStartPickingCommandHandler(),
		c.CreatePickItemCommandHandler(),
		c.CreateReportItemIssueCommandHandler(),
		c.CreateResolveSubstitutionCommandHandler(),
		c.CreateConfirmPickupCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetPendingVendorsQueryHandler(),
	)
}

// CreateJobManager builds the background jobs with every handler wired.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.orderUoWFactory(),
		c.CreateAssignPickerCommandHandler(),
		c.CreateAssignRiderCommandHandler(),
		c.CreateExpireSubstitutionsCommandHandler(),
		c.logger,
	)
}

// The narrow unit-of-work factory interfaces are all satisfied by the full
// GormUnitOfWork, so each factory just narrows the same Create call.

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) vendorUoWFactory() commands.VendorUoWFactory {
	return FuncVendorUoWFactory(func() commands.VendorUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) workerUoWFactory() commands.WorkerUoWFactory {
	return FuncWorkerUoWFactory(func() commands.WorkerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) placementUoWFactory() commands.PlacementUoWFactory {
	return FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) substitutionUoWFactory() commands.SubstitutionUoWFactory {
	return FuncSubstitutionUoWFactory(func() commands.SubstitutionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncVendorUoWFactory func() commands.VendorUoW

func (f FuncVendorUoWFactory) Create() commands.VendorUoW {
	return f()
}

type FuncWorkerUoWFactory func() commands.WorkerUoW

func (f FuncWorkerUoWFactory) Create() commands.WorkerUoW {
	return f()
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncSubstitutionUoWFactory func() commands.SubstitutionUoW

func (f FuncSubstitutionUoWFactory) Create() commands.SubstitutionUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}
