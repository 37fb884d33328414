package http

import (
	"bytes"
	"fmt"
	"net/http"

	"rollmill/internal/adapters/out/interchange"
	"rollmill/internal/core/application/usecases/commands"
	"rollmill/internal/core/application/usecases/queries"
	"rollmill/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sampleFileName = "sample_orders.xlsx"

// ExportOrders handles GET /api/orders/export?format=json|xlsx. JSON is the
// default.
func (s *Server) ExportOrders(c echo.Context) error {
	format := interchange.FormatJSON
	if raw := c.QueryParam("format"); raw != "" {
		parsed, err := interchange.ParseFormat(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidQuery, Error: err.Error()})
		}
		format = parsed
	}

	orders, err := s.useCases.ListOrders.Handle(c.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return s.respondError(c, err)
	}

	var buf bytes.Buffer
	switch format {
	case interchange.FormatXLSX:
		err = interchange.WriteXLSX(&buf, orders)
	default:
		err = interchange.WriteJSON(&buf, orders)
	}
	if err != nil {
		return s.respondError(c, err)
	}

	s.metrics.Operation("export", resultSuccess)
	return attachment(c, format.FileName(), format.ContentType(), buf.Bytes())
}

// ImportOrders handles POST /api/orders/import with a JSON array (or a single
// object) in the body.
func (s *Server) ImportOrders(c echo.Context) error {
	drafts, err := interchange.ReadJSON(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidFile, Error: err.Error()})
	}
	return s.importDrafts(c, drafts)
}

// ImportOrdersFile handles POST /api/orders/import/xlsx with the workbook in
// the multipart field "file". A .json upload is read as JSON.
func (s *Server) ImportOrdersFile(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidFile, Error: err.Error()})
	}

	file, err := header.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidFile, Error: err.Error()})
	}
	defer file.Close()

	read := interchange.ReadXLSX
	if format, err := interchange.FormatFromPath(header.Filename); err == nil && format == interchange.FormatJSON {
		read = interchange.ReadJSON
	}

	drafts, err := read(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidFile, Error: err.Error()})
	}
	return s.importDrafts(c, drafts)
}

// DownloadSample handles GET /api/orders/import/sample.xlsx.
func (s *Server) DownloadSample(c echo.Context) error {
	var buf bytes.Buffer
	if err := interchange.WriteSampleXLSX(&buf); err != nil {
		return s.respondError(c, err)
	}
	return attachment(c, sampleFileName, interchange.ContentTypeXLSX, buf.Bytes())
}

// importDrafts answers 201 when every record was created, 207 when only some
// were and 422 when none were.
func (s *Server) importDrafts(c echo.Context, drafts []order.Draft) error {
	cmd, err := commands.NewImportOrdersCommand(drafts)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: msgInvalidFile, Error: err.Error()})
	}

	report, err := s.useCases.ImportOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	for range report.Created {
		s.metrics.Operation("import", resultSuccess)
	}
	for _, f := range report.Failures {
		s.metrics.Operation("import", outcome(f.Err))
	}

	status := http.StatusCreated
	switch {
	case report.Partial():
		status = http.StatusMultiStatus
	case len(report.Created) == 0:
		status = http.StatusUnprocessableEntity
	}

	if len(report.Failures) > 0 {
		s.logger.Warn("import finished with failures",
			zap.String("request_id", requestID(c)),
			zap.Int("records", cmd.Len()),
			zap.Int("created", len(report.Created)),
			zap.Int("failed", len(report.Failures)),
		)
	}

	return c.JSON(status, newImportResponse(report))
}

func attachment(c echo.Context, name, contentType string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, contentType, body)
}
