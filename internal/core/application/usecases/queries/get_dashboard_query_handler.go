package queries

import (
	"context"

	"rollmill/internal/core/domain/services"
	"rollmill/internal/core/ports"
)

type GetDashboardQueryHandler struct {
	reader     ports.OrderReader
	calculator services.DashboardCalculator
}

func NewGetDashboardQueryHandler(reader ports.OrderReader) GetDashboardQueryHandler {
	return GetDashboardQueryHandler{
		reader:     reader,
		calculator: services.NewDashboardCalculator(),
	}
}

func (h GetDashboardQueryHandler) Handle(ctx context.Context, query GetDashboardQuery) (services.DashboardStats, error) {
	if err := query.Validate(); err != nil {
		return services.DashboardStats{}, err
	}

	orders, err := h.reader.List(ctx)
	if err != nil {
		return services.DashboardStats{}, err
	}

	return h.calculator.Compute(orders, query.Now()), nil
}
