package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/clientproductrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	allocationHook *clientproductrepo.GormAllocationHook
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		allocationHook: clientproductrepo.NewGormAllocationHook(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.allocationHook)
}

func (c *CompositionRoot) CreateAllocateLineCommandHandler() commands.AllocateLineCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateLineCommandHandler(f, c.allocationHook)
}

func (c *CompositionRoot) CreateDispatchLineCommandHandler() commands.DispatchLineCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchLineCommandHandler(f, c.allocationHook)
}

func (c *CompositionRoot) CreateDeliverLineCommandHandler() commands.DeliverLineCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverLineCommandHandler(f)
}

func (c *CompositionRoot) CreateRestockInventoryCommandHandler() commands.RestockInventoryCommandHandler {
	var f commands.InventoryUoWFactory = FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRestockInventoryCommandHandler(f)
}

func (c *CompositionRoot) CreateSweepBackordersCommandHandler() commands.SweepBackordersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepBackordersCommandHandler(f, c.allocationHook)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStockLevelsQueryHandler() queries.GetStockLevelsQueryHandler {
	return queries.NewGetStockLevelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepBackordersCommandHandler(), logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
