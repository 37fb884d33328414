package queries

import (
	"context"

	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/core/domain/services"
	"rollmill/internal/core/ports"
)

type GetOverdueOrdersQueryHandler struct {
	reader     ports.OrderReader
	calculator services.DashboardCalculator
}

func NewGetOverdueOrdersQueryHandler(reader ports.OrderReader) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{
		reader:     reader,
		calculator: services.NewDashboardCalculator(),
	}
}

// Handle returns overdue orders, earliest expected delivery first.
func (h GetOverdueOrdersQueryHandler) Handle(ctx context.Context, query GetOverdueOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.List(ctx)
	if err != nil {
		return nil, err
	}

	return h.calculator.Overdue(orders, query.Now()), nil
}
