package http

import (
	"net/http"
	"time"

	"rollmill/internal/adapters/out/interchange"
	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/pkg/metric"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

// Server handles the /api/orders routes.
type Server struct {
	useCases UseCases
	numbers  NumberGenerator
	metrics  metric.Orders
	logger   *zap.Logger
	now      func() time.Time
}

func NewServer(useCases UseCases, numbers NumberGenerator, metrics metric.Orders, logger *zap.Logger) *Server {
	return &Server{
		useCases: useCases,
		numbers:  numbers,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Register mounts the order routes on e. Static segments are registered
// before /:id so echo prefers them.
func (s *Server) Register(e *echo.Echo) {
	g := e.Group("/api/orders")

	g.GET("", s.ListOrders)
	g.POST("", s.CreateOrder)
	g.GET("/search", s.SearchOrders)
	g.GET("/stats", s.GetDashboard)
	g.GET("/next-number", s.NextOrderNumber)
	g.GET("/export", s.ExportOrders)
	g.POST("/import", s.ImportOrders)
	g.POST("/import/xlsx", s.ImportOrdersFile)
	g.GET("/import/sample.xlsx", s.DownloadSample)
	g.PUT("/:id", s.UpdateOrder)
	g.DELETE("/:id", s.DeleteOrder)
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(c echo.Context) error {
	orders, err := s.useCases.ListOrders.Handle(c.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, orderRecords(orders))
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidBody, Error: bindMessage(err)})
	}

	cmd, err := commands.NewCreateOrderCommand(req.draft())
	if err != nil {
		s.metrics.Operation("create", outcome(err))
		return s.respondError(c, err)
	}

	created, err := s.useCases.CreateOrder.Handle(c.Request().Context(), cmd)
	s.metrics.Operation("create", outcome(err))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, interchange.RecordFromOrder(created))
}

// UpdateOrder handles PUT /api/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, ok := s.orderID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidID})
	}

	var req UpdateOrderRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidBody, Error: bindMessage(err)})
	}

	cmd, err := commands.NewUpdateOrderCommand(id, req.patch())
	if err != nil {
		s.metrics.Operation("update", outcome(err))
		return s.respondError(c, err)
	}

	updated, err := s.useCases.UpdateOrder.Handle(c.Request().Context(), cmd)
	s.metrics.Operation("update", outcome(err))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, interchange.RecordFromOrder(updated))
}

// DeleteOrder handles DELETE /api/orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, ok := s.orderID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidID})
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidID})
	}

	err = s.useCases.DeleteOrder.Handle(c.Request().Context(), cmd)
	s.metrics.Operation("delete", outcome(err))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: msgDeleted})
}

// SearchOrders handles GET /api/orders/search.
func (s *Server) SearchOrders(c echo.Context) error {
	var params SearchParams
	bindings := []struct {
		name string
		dest any
	}{
		{"search", &params.Search},
		{"status", &params.Status},
		{"rollStatus", &params.RollStatus},
		{"grade", &params.Grade},
		{"description", &params.Description},
		{"page", &params.Page},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, c.QueryParams(), b.dest); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidQuery, Error: err.Error()})
		}
	}

	result, err := s.useCases.SearchOrders.Handle(c.Request().Context(), queries.NewSearchOrdersQuery(params.criteria()))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newSearchResponse(result))
}

// GetDashboard handles GET /api/orders/stats.
func (s *Server) GetDashboard(c echo.Context) error {
	query, err := queries.NewGetDashboardQuery(s.now())
	if err != nil {
		return s.respondError(c, err)
	}

	stats, err := s.useCases.GetDashboard.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newDashboardResponse(stats))
}

// NextOrderNumber handles GET /api/orders/next-number. The number is a
// suggestion: uniqueness is enforced only when the order is created.
func (s *Server) NextOrderNumber(c echo.Context) error {
	return c.JSON(http.StatusOK, nextNumberResponse{OrderNumber: s.numbers.Next()})
}

func (s *Server) orderID(c echo.Context) (kernel.UUID, bool) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, false
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, false
	}
	return id, true
}

func bindMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		if he.Internal != nil {
			return he.Internal.Error()
		}
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}
