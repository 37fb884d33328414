package queries

import (
	"errors"

	"rollmill/internal/core/domain/services"
	"rollmill/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchOrdersQuery filters and paginates orders.
//
// Example:
//
//	query := NewSearchOrdersQuery(services.Criteria{
//	    Search:     "steel",
//	    RollStatus: "casting",
//	    Page:       1,
//	})
//	result, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("page %d of %d\n", result.Page.Page, result.Page.TotalPages)
type SearchOrdersQuery struct {
	criteria services.Criteria

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery accepts any criteria: unknown facet values simply
// match nothing and out-of-range pages are clamped.
func NewSearchOrdersQuery(criteria services.Criteria) SearchOrdersQuery {
	return SearchOrdersQuery{
		criteria: criteria,
		guard:    guard.NewConstructorGuard(),
	}
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) Criteria() services.Criteria {
	return q.criteria
}

// SearchOrdersResult is one page of matches plus the facet values present
// in the whole collection.
type SearchOrdersResult struct {
	Page   services.Page
	Facets services.FacetOptions
}
