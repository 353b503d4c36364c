package cmd

import (
	"log/slog"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/auth"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	eventRepo  ports.EventRepository
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		eventRepo:  eventrepo.NewGormEventRepository(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateBulkOrderCommandHandler() commands.CreateBulkOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBulkOrderCommandHandler(f, services.NewBulkConsolidator())
}

func (c *CompositionRoot) CreateCloseBulkBatchCommandHandler() commands.CloseBulkBatchCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseBulkBatchCommandHandler(f, c.eventRepo, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler(
	closeBatch *commands.CloseBulkBatchCommandHandler,
) commands.UpdateOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, closeBatch, c.eventRepo, c.logger)
}

func (c *CompositionRoot) CreateCloseWarehouseJobCommandHandler(
	closeBatch *commands.CloseBulkBatchCommandHandler,
) commands.CloseWarehouseJobCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseWarehouseJobCommandHandler(f, closeBatch, c.eventRepo, c.logger)
}

func (c *CompositionRoot) CreateRecordDeliveryCommandHandler() commands.RecordDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordDeliveryCommandHandler(f, c.eventRepo, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderEventsQueryHandler() queries.GetOrderEventsQueryHandler {
	return queries.NewGetOrderEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingShippingGuidesQueryHandler() queries.GetPendingShippingGuidesQueryHandler {
	return queries.NewGetPendingShippingGuidesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuthorizationChecker() ports.AuthorizationChecker {
	return auth.NewStaticAuthorizationChecker()
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	closeBatch := c.CreateCloseBulkBatchCommandHandler()
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCreateBulkOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(&closeBatch),
		c.CreateCloseWarehouseJobCommandHandler(&closeBatch),
		&closeBatch,
		c.CreateRecordDeliveryCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetOrderEventsQueryHandler(),
		c.CreateGetPendingShippingGuidesQueryHandler(),
		c.CreateAuthorizationChecker(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverdueOrdersQueryHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
