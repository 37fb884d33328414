package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "rollmill/internal/adapters/in/http"
	"rollmill/internal/adapters/out/interchange"
	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/core/domain/services"
	"rollmill/internal/pkg/errs"
	"rollmill/internal/pkg/metric"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	e       *echo.Echo
	metrics metric.Factory
	create  *MockCreateOrderHandler
	update  *MockUpdateOrderHandler
	delete  *MockDeleteOrderHandler
	imports *MockImportOrdersHandler
	list    *MockListOrdersHandler
	search  *MockSearchOrdersHandler
	stats   *MockGetDashboardHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		metrics: metric.NewFactory(),
		create:  &MockCreateOrderHandler{},
		update:  &MockUpdateOrderHandler{},
		delete:  &MockDeleteOrderHandler{},
		imports: &MockImportOrdersHandler{},
		list:    &MockListOrdersHandler{},
		search:  &MockSearchOrdersHandler{},
		stats:   &MockGetDashboardHandler{},
	}

	server := httpadapter.NewServer(httpadapter.UseCases{
		CreateOrder:  f.create,
		UpdateOrder:  f.update,
		DeleteOrder:  f.delete,
		ImportOrders: f.imports,
		ListOrders:   f.list,
		SearchOrders: f.search,
		GetDashboard: f.stats,
	}, order.NewNumberGenerator(), f.metrics.Orders(), zap.NewNop())

	e, err := httpadapter.NewRouter(server, httpadapter.RouterConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
		Logger:         zap.NewNop(),
		Metrics:        f.metrics,
	})
	require.NoError(t, err)
	f.e = e

	t.Cleanup(func() {
		f.create.AssertExpectations(t)
		f.update.AssertExpectations(t)
		f.delete.AssertExpectations(t)
		f.imports.AssertExpectations(t)
		f.list.AssertExpectations(t)
		f.search.AssertExpectations(t)
		f.stats.AssertExpectations(t)
	})
	return f
}

func (f *fixture) do(method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorBody struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Errors  []string `json:"errors"`
	Details []struct {
		Field     string `json:"field"`
		RollIndex int    `json:"rollIndex"`
	} `json:"details"`
}

const createBody = `{
	"orderNumber": "RM001",
	"companyName": "ABC Steel Works",
	"quantity": 2,
	"orderDate": "2024-01-15",
	"expectedDelivery": "2024-02-15",
	"rolls": [
		{"rollNumber": "R-1", "hardness": "450 HB", "status": "casting", "grade": "ALLOYS"},
		{"rollNumber": "R-2", "hardness": "460 HB"}
	]
}`

func TestLiveness(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", rec.Body.String())

	rec = f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestCreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		stored := storedOrder(t, "RM001")
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			return cmd.OrderNumber() == "RM001"
		})).Return(stored, nil).Once()

		rec := f.do(http.MethodPost, "/api/orders", createBody)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		got := decode[interchange.OrderRecord](t, rec)
		assert.Equal(t, stored.ID().String(), got.ID)
		assert.Equal(t, "RM001", got.OrderNumber)
		assert.Len(t, got.Rolls, 2)
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/orders", `{"orderNumber":"RM001","rolls":[]}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorBody](t, rec)
		assert.Equal(t, "Validation Error", body.Message)
		fields := make([]string, 0, len(body.Details))
		for _, d := range body.Details {
			fields = append(fields, d.Field)
		}
		assert.Subset(t, fields, []string{"companyName", "quantity", "orderDate", "expectedDelivery"})
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("rolls that are not an array count as no rolls", func(t *testing.T) {
		for _, rolls := range []string{`"oops"`, `{"rollNumber":"R-1","hardness":"450 HB"}`, `42`, `true`} {
			t.Run(rolls, func(t *testing.T) {
				f := newFixture(t)

				rec := f.do(http.MethodPost, "/api/orders", `{"orderNumber":"RM001","rolls":`+rolls+`}`)

				require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
				body := decode[errorBody](t, rec)
				assert.Equal(t, "Validation Error", body.Message)
				fields := make([]string, 0, len(body.Details))
				for _, d := range body.Details {
					fields = append(fields, d.Field)
				}
				assert.Subset(t, fields, []string{"companyName", "quantity", "orderDate", "expectedDelivery", "rolls"})
				assert.Contains(t, body.Errors, "At least one roll is required")
			})
		}
	})

	t.Run("invalid roll carries its position", func(t *testing.T) {
		f := newFixture(t)
		body := strings.Replace(createBody, `"hardness": "460 HB"`, `"hardness": ""`, 1)

		rec := f.do(http.MethodPost, "/api/orders", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		got := decode[errorBody](t, rec)
		require.NotEmpty(t, got.Details)
		assert.Equal(t, 2, got.Details[0].RollIndex)
	})

	t.Run("duplicate order number", func(t *testing.T) {
		f := newFixture(t)
		f.create.On("Handle", mock.Anything, mock.Anything).
			Return(nil, order.NewDuplicateOrderNumberError("RM001", errs.NewObjectAlreadyExistsError("orderNumber", "RM001"))).
			Once()

		rec := f.do(http.MethodPost, "/api/orders", createBody)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errorBody](t, rec)
		assert.Equal(t, "Duplicate order number", body.Message)
		assert.Contains(t, body.Error, "RM001")
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/orders", `{"orderNumber":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decode[errorBody](t, rec).Message)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.create.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewStorageUnavailableError("add order", errors.New("connection refused"))).
			Once()

		rec := f.do(http.MethodPost, "/api/orders", createBody)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Something went wrong!", decode[errorBody](t, rec).Message)
	})
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	f.list.On("Handle", mock.Anything, mock.Anything).
		Return([]*order.Order{storedOrder(t, "RM002"), storedOrder(t, "RM001")}, nil).
		Once()

	rec := f.do(http.MethodGet, "/api/orders", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]interchange.OrderRecord](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "RM002", got[0].OrderNumber)
}

func TestUpdateOrder(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		f := newFixture(t)
		stored := storedOrder(t, "RM001")
		f.update.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderCommand) bool {
			return cmd.OrderID().IsEqual(stored.ID())
		})).Return(stored, nil).Once()

		rec := f.do(http.MethodPut, "/api/orders/"+stored.ID().String(), `{"notes":"rush"}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/orders/not-a-uuid", `{"notes":"rush"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid order id", decode[errorBody](t, rec).Message)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.update.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("order", id.String())).
			Once()

		rec := f.do(http.MethodPut, "/api/orders/"+id.String(), `{"notes":"rush"}`)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", decode[errorBody](t, rec).Message)
	})

	t.Run("rolls that are not an array are rejected", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/orders/"+kernel.NewUUID().String(), `{"notes":"rush","rolls":"none"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		body := decode[errorBody](t, rec)
		assert.Equal(t, "Validation Error", body.Message)
		require.Len(t, body.Details, 1)
		assert.Equal(t, "rolls", body.Details[0].Field)
	})

	t.Run("null rolls leave the stored list alone", func(t *testing.T) {
		f := newFixture(t)
		stored := storedOrder(t, "RM001")
		f.update.On("Handle", mock.Anything, mock.Anything).Return(stored, nil).Once()

		rec := f.do(http.MethodPut, "/api/orders/"+stored.ID().String(), `{"notes":"rush","rolls":null}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("empty roll list is rejected", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPut, "/api/orders/"+kernel.NewUUID().String(), `{"rolls":[]}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Validation Error", decode[errorBody](t, rec).Message)
	})
}

func TestDeleteOrder(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)
		f.delete.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()

		rec := f.do(http.MethodDelete, "/api/orders/"+kernel.NewUUID().String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Order deleted successfully", decode[errorBody](t, rec).Message)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.delete.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectNotFoundError("order", "x")).
			Once()

		rec := f.do(http.MethodDelete, "/api/orders/"+kernel.NewUUID().String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSearchOrders(t *testing.T) {
	t.Run("binds query parameters", func(t *testing.T) {
		f := newFixture(t)
		f.search.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.SearchOrdersQuery) bool {
			c := q.Criteria()
			return c.Search == "abc" && c.RollStatus == "casting" && c.Grade == "ALLOYS" && c.Page == 2
		})).Return(queries.SearchOrdersResult{
			Page: services.Page{
				Orders:     []*order.Order{storedOrder(t, "RM011")},
				Page:       2,
				PageSize:   services.PageSize,
				TotalPages: 2,
				Total:      11,
			},
			Facets: services.FacetOptions{
				Grades:                 []string{"ALLOYS"},
				DescriptionSuggestions: order.DescriptionSuggestions(),
			},
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/orders/search?search=abc&rollStatus=casting&grade=ALLOYS&page=2", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body struct {
			Orders     []interchange.OrderRecord `json:"orders"`
			Page       int                       `json:"page"`
			TotalPages int                       `json:"totalPages"`
			Total      int                       `json:"total"`
			Facets     struct {
				RollStatuses           []string `json:"rollStatuses"`
				Grades                 []string `json:"grades"`
				DescriptionSuggestions []string `json:"descriptionSuggestions"`
			} `json:"facets"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Page)
		assert.Equal(t, 11, body.Total)
		assert.Len(t, body.Orders, 1)
		assert.Equal(t, []string{"ALLOYS"}, body.Facets.Grades)
		assert.NotNil(t, body.Facets.RollStatuses)
		assert.Contains(t, body.Facets.DescriptionSuggestions, "SHAFT")
	})

	t.Run("page defaults to the first", func(t *testing.T) {
		f := newFixture(t)
		f.search.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.SearchOrdersQuery) bool {
			return q.Criteria().Page == 1
		})).Return(queries.SearchOrdersResult{Page: services.Page{Page: 1, PageSize: services.PageSize}}, nil).Once()

		rec := f.do(http.MethodGet, "/api/orders/search", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non numeric page", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/orders/search?page=two", "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid query parameter", decode[errorBody](t, rec).Message)
	})
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	f.stats.On("Handle", mock.Anything, mock.Anything).Return(services.DashboardStats{
		Total:         3,
		Pending:       1,
		InProgress:    1,
		Completed:     1,
		RecentOrders:  []*order.Order{storedOrder(t, "RM001")},
		RollsByStatus: map[order.RollStatus]int{order.RollStatusCasting: 2},
		OrdersByGrade: map[order.Grade]int{order.GradeAlloys: 1},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/orders/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Total         int            `json:"total"`
		InProgress    int            `json:"inProgress"`
		RecentOrders  []any          `json:"recentOrders"`
		RollsByStatus map[string]int `json:"rollsByStatus"`
		Overdue       []any          `json:"overdue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 1, body.InProgress)
	assert.Len(t, body.RecentOrders, 1)
	assert.Equal(t, 2, body.RollsByStatus["casting"])
	assert.NotNil(t, body.Overdue)
}

func TestNextOrderNumber(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/orders/next-number", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		OrderNumber string `json:"orderNumber"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Regexp(t, `^ORD-\d+-\d+$`, body.OrderNumber)
}

func TestExportOrders(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		f := newFixture(t)
		f.list.On("Handle", mock.Anything, mock.Anything).Return([]*order.Order{storedOrder(t, "RM001")}, nil).Once()

		rec := f.do(http.MethodGet, "/api/orders/export", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "orders.json")
		drafts, err := interchange.ReadJSON(rec.Body)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "RM001", drafts[0].OrderNumber)
	})

	t.Run("xlsx", func(t *testing.T) {
		f := newFixture(t)
		f.list.On("Handle", mock.Anything, mock.Anything).Return([]*order.Order{storedOrder(t, "RM001")}, nil).Once()

		rec := f.do(http.MethodGet, "/api/orders/export?format=xlsx", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, interchange.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "rolling_mill_orders.xlsx")
		drafts, err := interchange.ReadXLSX(rec.Body)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Len(t, drafts[0].Rolls, 2)
	})

	t.Run("unknown format", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodGet, "/api/orders/export?format=csv", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestImportOrders(t *testing.T) {
	t.Run("all created", func(t *testing.T) {
		f := newFixture(t)
		f.imports.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ImportOrdersCommand) bool {
			return cmd.Len() == 1
		})).Return(commands.ImportReport{Created: []*order.Order{storedOrder(t, "RM001")}}, nil).Once()

		rec := f.do(http.MethodPost, "/api/orders/import", "["+createBody+"]")

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("partial", func(t *testing.T) {
		f := newFixture(t)
		f.imports.On("Handle", mock.Anything, mock.Anything).Return(commands.ImportReport{
			Created: []*order.Order{storedOrder(t, "RM001")},
			Failures: []commands.ImportFailure{{
				Index:       2,
				OrderNumber: "RM001",
				Err:         order.NewDuplicateOrderNumberError("RM001", nil),
			}},
		}, nil).Once()

		rec := f.do(http.MethodPost, "/api/orders/import", "["+createBody+","+createBody+"]")

		require.Equal(t, http.StatusMultiStatus, rec.Code)
		var body struct {
			Created []any `json:"created"`
			Failed  []struct {
				Index   int    `json:"index"`
				Message string `json:"message"`
			} `json:"failed"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Created, 1)
		require.Len(t, body.Failed, 1)
		assert.Equal(t, 2, body.Failed[0].Index)
		assert.Equal(t, "Duplicate order number", body.Failed[0].Message)
	})

	t.Run("nothing created", func(t *testing.T) {
		f := newFixture(t)
		f.imports.On("Handle", mock.Anything, mock.Anything).Return(commands.ImportReport{
			Failures: []commands.ImportFailure{{Index: 1, Err: &order.ValidationError{}}},
		}, nil).Once()

		rec := f.do(http.MethodPost, "/api/orders/import", "["+createBody+"]")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("empty array", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/orders/import", "[]")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not json", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/orders/import", "orderNumber,companyName")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid import file", decode[errorBody](t, rec).Message)
	})
}

func TestImportOrdersFile(t *testing.T) {
	var sample bytes.Buffer
	require.NoError(t, interchange.WriteSampleXLSX(&sample))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "sample_orders.xlsx")
	require.NoError(t, err)
	_, err = part.Write(sample.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	f := newFixture(t)
	f.imports.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ImportOrdersCommand) bool {
		return cmd.Len() == 1
	})).Return(commands.ImportReport{Created: []*order.Order{storedOrder(t, "RM001")}}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/orders/import/xlsx", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestDownloadSample(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/orders/import/sample.xlsx", "")

	require.Equal(t, http.StatusOK, rec.Code)
	drafts, err := interchange.ReadXLSX(rec.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, drafts)
}

func TestCORS(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}

func TestOpenAPIAndMetrics(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	rec = f.do(http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/openapi.json",status="2xx"} 1`)
}
