package queries_test

import (
	"context"
	"testing"
	"time"

	"rollmill/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func newOrder(t *testing.T, number string, date time.Time, statuses ...order.RollStatus) *order.Order {
	t.Helper()
	if len(statuses) == 0 {
		statuses = []order.RollStatus{order.RollStatusPending}
	}

	rolls := make([]order.Roll, 0, len(statuses))
	for _, s := range statuses {
		r, err := order.NewRoll(order.RollParams{
			RollNumber: number + "-R",
			Hardness:   "450 HB",
			Status:     s,
			Grade:      order.GradeAlloys,
		})
		require.NoError(t, err)
		rolls = append(rolls, r)
	}

	o, err := order.NewOrder(order.Params{
		OrderNumber:      number,
		CompanyName:      "ABC Steel Works",
		Quantity:         len(rolls),
		OrderDate:        date,
		ExpectedDelivery: date.AddDate(0, 0, 30),
		Rolls:            rolls,
	})
	require.NoError(t, err)
	return o
}
