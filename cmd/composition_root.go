package cmd

import (
	"context"
	"fmt"

	httpadapter "rollmill/internal/adapters/in/http"
	"rollmill/internal/adapters/out/mongodb"
	mongoorderrepo "rollmill/internal/adapters/out/mongodb/orderrepo"
	"rollmill/internal/adapters/out/postgres"
	pgorderrepo "rollmill/internal/adapters/out/postgres/orderrepo"
	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/core/ports"
	"rollmill/internal/jobs"
	"rollmill/internal/pkg/metric"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CompositionRoot owns the storage client and builds every handler on top
// of it.
type CompositionRoot struct {
	cfg        Config
	logger     *zap.Logger
	metrics    metric.Factory
	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderReader
	close      func(ctx context.Context) error
}

// NewCompositionRoot connects to the configured storage backend. Close must
// be called on shutdown.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *zap.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		metrics: metric.NewFactory(),
	}

	switch cfg.StorageDriver {
	case StorageMongoDB:
		client, collection, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		root.uowFactory = mongodb.NewUnitOfWorkFactory(collection)
		root.reader = mongoorderrepo.NewMongoOrderRepository(collection)
		root.close = client.Disconnect
	default:
		db, err := postgres.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		if err = postgres.Migrate(ctx, db); err != nil {
			_ = postgres.Close(db)
			return nil, err
		}
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		root.reader = pgorderrepo.NewGormOrderRepository(db)
		root.close = func(context.Context) error { return postgres.Close(db) }
	}

	logger.Info("storage connected", zap.String("driver", cfg.StorageDriver))
	return root, nil
}

// Close releases the storage client.
func (c *CompositionRoot) Close(ctx context.Context) error {
	if c.close == nil {
		return nil
	}
	if err := c.close(ctx); err != nil {
		return fmt.Errorf("close %s storage: %w", c.cfg.StorageDriver, err)
	}
	return nil
}

func (c *CompositionRoot) Metrics() metric.Factory {
	return c.metrics
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateImportOrdersCommandHandler() commands.ImportOrdersCommandHandler {
	return commands.NewImportOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.reader)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.reader)
}

// CreateRouter builds the echo instance with every REST route.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.UseCases{
		CreateOrder:  c.CreateCreateOrderCommandHandler(),
		UpdateOrder:  c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:  c.CreateDeleteOrderCommandHandler(),
		ImportOrders: c.CreateImportOrdersCommandHandler(),
		ListOrders:   c.CreateListOrdersQueryHandler(),
		SearchOrders: c.CreateSearchOrdersQueryHandler(),
		GetDashboard: c.CreateGetDashboardQueryHandler(),
	}, order.NewNumberGenerator(), c.metrics.Orders(), c.logger)

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		AllowedOrigins: c.cfg.CORSAllowedOrigins,
		Logger:         c.logger,
		Metrics:        c.metrics,
	})
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	overdue, err := jobs.NewOverdueOrdersJob(
		c.CreateGetOverdueOrdersQueryHandler(),
		c.cfg.OverdueCheckSchedule,
		c.metrics.Orders(),
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(c.logger, overdue), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
