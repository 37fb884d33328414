package http

import (
	"strings"

	"rollmill/internal/adapters/out/interchange"
	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/core/domain/services"
)

// OrderRequest is the body of POST /api/orders. quantity may be sent as a
// number or as text. rolls that is not an array counts as no rolls.
type OrderRequest struct {
	OrderNumber      string               `json:"orderNumber"`
	CompanyName      string               `json:"companyName"`
	Broker           string               `json:"broker"`
	Quantity         interchange.Quantity `json:"quantity"`
	OrderDate        string               `json:"orderDate"`
	ExpectedDelivery string               `json:"expectedDelivery"`
	Notes            string               `json:"notes"`
	Rolls            interchange.RollList `json:"rolls"`
}

// UpdateOrderRequest is the body of PUT /api/orders/:id. Absent fields are
// left untouched; a present rolls value replaces the stored list, and one
// that is not an array replaces it with nothing.
type UpdateOrderRequest struct {
	OrderNumber      *string               `json:"orderNumber"`
	CompanyName      *string               `json:"companyName"`
	Broker           *string               `json:"broker"`
	Quantity         *interchange.Quantity `json:"quantity"`
	OrderDate        *string               `json:"orderDate"`
	ExpectedDelivery *string               `json:"expectedDelivery"`
	Notes            *string               `json:"notes"`
	Rolls            *interchange.RollList `json:"rolls"`
}

func (r OrderRequest) draft() order.Draft {
	return order.Draft{
		OrderNumber:      r.OrderNumber,
		CompanyName:      r.CompanyName,
		Broker:           r.Broker,
		Quantity:         string(r.Quantity),
		OrderDate:        r.OrderDate,
		ExpectedDelivery: r.ExpectedDelivery,
		Notes:            r.Notes,
		Rolls:            r.Rolls.Drafts(),
	}
}

func (r UpdateOrderRequest) patch() order.Patch {
	p := order.Patch{
		OrderNumber:      r.OrderNumber,
		CompanyName:      r.CompanyName,
		Broker:           r.Broker,
		OrderDate:        r.OrderDate,
		ExpectedDelivery: r.ExpectedDelivery,
		Notes:            r.Notes,
	}
	if r.Quantity != nil {
		q := string(*r.Quantity)
		p.Quantity = &q
	}
	if r.Rolls != nil {
		rolls := r.Rolls.Drafts()
		p.Rolls = &rolls
	}
	return p
}

func orderRecords(orders []*order.Order) []interchange.OrderRecord {
	out := make([]interchange.OrderRecord, 0, len(orders))
	for _, o := range orders {
		out = append(out, interchange.RecordFromOrder(o))
	}
	return out
}

// SearchParams are the query parameters of GET /api/orders/search.
type SearchParams struct {
	Search      *string
	Status      *string
	RollStatus  *string
	Grade       *string
	Description *string
	Page        *int
}

func (p SearchParams) criteria() services.Criteria {
	c := services.Criteria{
		Search:      deref(p.Search),
		OrderStatus: deref(p.Status),
		RollStatus:  deref(p.RollStatus),
		Grade:       deref(p.Grade),
		Description: deref(p.Description),
		Page:        1,
	}
	if p.Page != nil {
		c.Page = *p.Page
	}
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

type facetsResponse struct {
	RollStatuses           []string `json:"rollStatuses"`
	Grades                 []string `json:"grades"`
	Descriptions           []string `json:"descriptions"`
	DescriptionSuggestions []string `json:"descriptionSuggestions"`
}

type searchResponse struct {
	Orders     []interchange.OrderRecord `json:"orders"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"pageSize"`
	TotalPages int                       `json:"totalPages"`
	Total      int                       `json:"total"`
	Facets     facetsResponse            `json:"facets"`
}

func newSearchResponse(r queries.SearchOrdersResult) searchResponse {
	return searchResponse{
		Orders:     orderRecords(r.Page.Orders),
		Page:       r.Page.Page,
		PageSize:   r.Page.PageSize,
		TotalPages: r.Page.TotalPages,
		Total:      r.Page.Total,
		Facets: facetsResponse{
			RollStatuses: nonNil(r.Facets.RollStatuses),
			Grades:       nonNil(r.Facets.Grades),
			Descriptions: nonNil(r.Facets.Descriptions),
		},
	}
}

type dashboardResponse struct {
	Total           int                       `json:"total"`
	Pending         int                       `json:"pending"`
	InProgress      int                       `json:"inProgress"`
	Completed       int                       `json:"completed"`
	OrdersThisMonth int                       `json:"ordersThisMonth"`
	RecentOrders    []interchange.OrderRecord `json:"recentOrders"`
	RollsByStatus   map[string]int            `json:"rollsByStatus"`
	OrdersByGrade   map[string]int            `json:"ordersByGrade"`
	Overdue         []interchange.OrderRecord `json:"overdue"`
}

func newDashboardResponse(s services.DashboardStats) dashboardResponse {
	rolls := make(map[string]int, len(s.RollsByStatus))
	for status, n := range s.RollsByStatus {
		rolls[status.String()] = n
	}
	grades := make(map[string]int, len(s.OrdersByGrade))
	for grade, n := range s.OrdersByGrade {
		grades[grade.String()] = n
	}

	return dashboardResponse{
		Total:           s.Total,
		Pending:         s.Pending,
		InProgress:      s.InProgress,
		Completed:       s.Completed,
		OrdersThisMonth: s.OrdersThisMonth,
		RecentOrders:    orderRecords(s.RecentOrders),
		RollsByStatus:   rolls,
		OrdersByGrade:   grades,
		Overdue:         orderRecords(s.Overdue),
	}
}

type nextNumberResponse struct {
	OrderNumber string `json:"orderNumber"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type importFailureResponse struct {
	Index       int      `json:"index"`
	OrderNumber string   `json:"orderNumber"`
	Message     string   `json:"message"`
	Errors      []string `json:"errors"`
}

type importResponse struct {
	Created []interchange.OrderRecord `json:"created"`
	Failed  []importFailureResponse   `json:"failed"`
}

func newImportResponse(r commands.ImportReport) importResponse {
	failed := make([]importFailureResponse, 0, len(r.Failures))
	for _, f := range r.Failures {
		message, details := describe(f.Err)
		failed = append(failed, importFailureResponse{
			Index:       f.Index,
			OrderNumber: f.OrderNumber,
			Message:     message,
			Errors:      details,
		})
	}
	return importResponse{
		Created: orderRecords(r.Created),
		Failed:  failed,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
