package http_test

import (
	"context"
	"testing"
	"time"

	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockUpdateOrderHandler struct{ mock.Mock }

func (m *MockUpdateOrderHandler) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockDeleteOrderHandler struct{ mock.Mock }

func (m *MockDeleteOrderHandler) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockImportOrdersHandler struct{ mock.Mock }

func (m *MockImportOrdersHandler) Handle(ctx context.Context, cmd commands.ImportOrdersCommand) (commands.ImportReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ImportReport), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]*order.Order, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockSearchOrdersHandler struct{ mock.Mock }

func (m *MockSearchOrdersHandler) Handle(ctx context.Context, query queries.SearchOrdersQuery) (queries.SearchOrdersResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.SearchOrdersResult), args.Error(1)
}

type MockGetDashboardHandler struct{ mock.Mock }

func (m *MockGetDashboardHandler) Handle(ctx context.Context, query queries.GetDashboardQuery) (services.DashboardStats, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(services.DashboardStats), args.Error(1)
}

func validDraft(number string) order.Draft {
	return order.Draft{
		OrderNumber:      number,
		CompanyName:      "ABC Steel Works",
		Broker:           "Metal Traders",
		Quantity:         "2",
		OrderDate:        "2024-01-15",
		ExpectedDelivery: "2024-02-15",
		Rolls: []order.RollDraft{
			{RollNumber: "R-1", Hardness: "450 HB", Status: "casting", Grade: "ALLOYS"},
			{RollNumber: "R-2", Hardness: "460 HB"},
		},
	}
}

func storedOrder(t *testing.T, number string) *order.Order {
	t.Helper()
	o, err := order.ValidateForCreate(validDraft(number))
	require.NoError(t, err)
	require.NoError(t, o.AssignIdentity(kernel.NewUUID(), time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)))
	return o
}
