package services

import (
	"slices"
	"sort"
	"strings"

	"rollmill/internal/core/domain/model/order"
)

const (
	// PageSize is the number of orders on one page.
	PageSize = 10

	// FacetAll disables a facet.
	FacetAll = "all"
)

// Criteria selects orders. Empty strings and FacetAll leave a facet
// unconstrained; Page is 1-based and clamped into range.
type Criteria struct {
	Search      string
	OrderStatus string
	RollStatus  string
	Grade       string
	Description string
	Page        int
}

// Page is one page of filtered orders.
type Page struct {
	Orders     []*order.Order
	Page       int
	PageSize   int
	TotalPages int
	Total      int
}

// FacetOptions are the distinct values present in a collection, used to fill
// filter drop-downs. DescriptionSuggestions is the fixed list offered by the
// order form, whatever the collection holds.
type FacetOptions struct {
	RollStatuses           []string
	Grades                 []string
	Descriptions           []string
	DescriptionSuggestions []string
}

// OrderFilter searches, filters, sorts and paginates orders in memory.
//
// Example:
//
//	page := services.NewOrderFilter().Apply(orders, services.Criteria{
//	    Search: "abc",
//	    Grade:  "ALLOYS",
//	    Page:   2,
//	})
type OrderFilter struct{}

func NewOrderFilter() OrderFilter {
	return OrderFilter{}
}

// Apply returns the page of orders matching c.
//
// The search term matches case-insensitively against companyName,
// orderNumber, broker and every roll's rollNumber and machining. Each facet
// matches when ANY roll carries the value; facets and search are combined
// with AND. Results are sorted by orderDate, newest first, keeping the input
// order for ties.
func (f OrderFilter) Apply(orders []*order.Order, c Criteria) Page {
	matched := f.Match(orders, c)

	total := len(matched)
	totalPages := (total + PageSize - 1) / PageSize
	page := min(max(c.Page, 1), max(totalPages, 1))

	start := min((page-1)*PageSize, total)
	end := min(start+PageSize, total)

	return Page{
		Orders:     matched[start:end],
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}

// Match returns every order matching c, sorted by orderDate descending.
func (f OrderFilter) Match(orders []*order.Order, c Criteria) []*order.Order {
	term := strings.ToLower(strings.TrimSpace(c.Search))

	matched := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if !matchesSearch(o, term) {
			continue
		}
		if !matchesFacet(o, c.OrderStatus, func(r order.Roll) string { return r.Status().String() }) ||
			!matchesFacet(o, c.RollStatus, func(r order.Roll) string { return r.Status().String() }) ||
			!matchesFacet(o, c.Grade, func(r order.Roll) string { return r.Grade().String() }) ||
			!matchesFacet(o, c.Description, order.Roll.Description) {
			continue
		}
		matched = append(matched, o)
	}

	SortByOrderDateDesc(matched)
	return matched
}

// Facets collects the distinct roll statuses, grades and descriptions of
// the given orders. Statuses follow workflow order; the others are sorted.
func (f OrderFilter) Facets(orders []*order.Order) FacetOptions {
	statuses := make(map[order.RollStatus]bool)
	grades := make(map[string]bool)
	descriptions := make(map[string]bool)

	for _, o := range orders {
		for _, r := range o.Rolls() {
			statuses[r.Status()] = true
			if g := r.Grade(); g != order.GradeNone {
				grades[g.String()] = true
			}
			if d := strings.TrimSpace(r.Description()); d != "" {
				descriptions[d] = true
			}
		}
	}

	opts := FacetOptions{
		RollStatuses: make([]string, 0, len(statuses)),
		Grades:       sortedKeys(grades),
		Descriptions: sortedKeys(descriptions),

		DescriptionSuggestions: order.DescriptionSuggestions(),
	}
	for _, s := range order.RollStatuses() {
		if statuses[s] {
			opts.RollStatuses = append(opts.RollStatuses, s.String())
		}
	}
	return opts
}

// SortByOrderDateDesc sorts orders in place, newest orderDate first. The sort
// is stable.
func SortByOrderDateDesc(orders []*order.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate().After(orders[j].OrderDate())
	})
}

func matchesSearch(o *order.Order, term string) bool {
	if term == "" {
		return true
	}
	if containsFold(o.CompanyName(), term) ||
		containsFold(o.OrderNumber(), term) ||
		containsFold(o.Broker(), term) {
		return true
	}
	return o.HasRollWith(func(r order.Roll) bool {
		return containsFold(r.RollNumber(), term) || containsFold(r.Machining(), term)
	})
}

func matchesFacet(o *order.Order, value string, field func(order.Roll) string) bool {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, FacetAll) {
		return true
	}
	return o.HasRollWith(func(r order.Roll) bool {
		return strings.EqualFold(field(r), value)
	})
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
