package http

import (
	"context"

	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/core/domain/services"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	UpdateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}

	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}

	ImportOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.ImportOrdersCommand) (commands.ImportReport, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]*order.Order, error)
	}

	SearchOrdersHandler interface {
		Handle(ctx context.Context, query queries.SearchOrdersQuery) (queries.SearchOrdersResult, error)
	}

	GetDashboardHandler interface {
		Handle(ctx context.Context, query queries.GetDashboardQuery) (services.DashboardStats, error)
	}

	// NumberGenerator suggests order numbers for the create form.
	NumberGenerator interface {
		Next() string
	}
)

// UseCases groups the application handlers the server delegates to.
type UseCases struct {
	CreateOrder  CreateOrderHandler
	UpdateOrder  UpdateOrderHandler
	DeleteOrder  DeleteOrderHandler
	ImportOrders ImportOrdersHandler
	ListOrders   ListOrdersHandler
	SearchOrders SearchOrdersHandler
	GetDashboard GetDashboardHandler
}
