package queries

import (
	"context"

	"rollmill/internal/core/domain/services"
	"rollmill/internal/core/ports"
)

type SearchOrdersQueryHandler struct {
	reader ports.OrderReader
	filter services.OrderFilter
}

func NewSearchOrdersQueryHandler(reader ports.OrderReader) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{
		reader: reader,
		filter: services.NewOrderFilter(),
	}
}

// Handle runs the filter over a snapshot of all orders. Facets are computed
// over the unfiltered snapshot so drop-downs keep every option.
func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) (SearchOrdersResult, error) {
	if err := query.Validate(); err != nil {
		return SearchOrdersResult{}, err
	}

	orders, err := h.reader.List(ctx)
	if err != nil {
		return SearchOrdersResult{}, err
	}

	return SearchOrdersResult{
		Page:   h.filter.Apply(orders, query.Criteria()),
		Facets: h.filter.Facets(orders),
	}, nil
}
