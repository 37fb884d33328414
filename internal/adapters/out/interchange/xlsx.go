package interchange

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/errs"

	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet = "Orders"
	SampleSheet = "Sample Orders"

	sheetDateLayout = "2006-01-02"
)

// Column names of the spreadsheet, in output order.
const (
	ColOrderNumber      = "orderNumber"
	ColCompanyName      = "companyName"
	ColBroker           = "broker"
	ColQuantity         = "quantity"
	ColOrderDate        = "orderDate"
	ColExpectedDelivery = "expectedDelivery"
	ColNotes            = "notes"
	ColRollNumber       = "rollNumber"
	ColHardness         = "hardness"
	ColMachining        = "machining"
	ColRollDescription  = "rollDescription"
	ColDimensions       = "dimensions"
	ColStatus           = "status"
	ColGrade            = "grade"
)

var columns = []string{
	ColOrderNumber, ColCompanyName, ColBroker, ColQuantity, ColOrderDate,
	ColExpectedDelivery, ColNotes, ColRollNumber, ColHardness, ColMachining,
	ColRollDescription, ColDimensions, ColStatus, ColGrade,
}

// legacyColumns maps headers of older sheets onto current columns. Headers
// that are neither current nor listed here are ignored.
var legacyColumns = map[string]string{
	"rolldimension": ColDimensions,
	"rolltype":      ColRollDescription,
	"description":   ColRollDescription,
}

var rollColumns = []string{
	ColRollNumber, ColHardness, ColMachining, ColRollDescription, ColDimensions, ColStatus, ColGrade,
}

// WriteXLSX writes one row per roll. Order-level cells repeat on every row
// of the order.
func WriteXLSX(w io.Writer, orders []*order.Order) error {
	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		for _, r := range o.Rolls() {
			rows = append(rows, []any{
				o.OrderNumber(),
				o.CompanyName(),
				o.Broker(),
				o.Quantity(),
				o.OrderDate().UTC().Format(sheetDateLayout),
				o.ExpectedDelivery().UTC().Format(sheetDateLayout),
				o.Notes(),
				r.RollNumber(),
				r.Hardness(),
				r.Machining(),
				r.Description(),
				r.Dimensions(),
				r.Status().String(),
				r.Grade().String(),
			})
		}
	}
	return writeWorkbook(w, OrdersSheet, rows)
}

// WriteSampleXLSX writes a template sheet with one two-roll order.
func WriteSampleXLSX(w io.Writer) error {
	rows := [][]any{
		{
			"RM001", "ABC Steel Works", "John Doe", 2, "2024-01-15", "2024-02-15", "Urgent order",
			"RM001-1", "450 HB", "rough turned", "ROLL", "50x100x200", order.RollStatusPending.String(), order.GradeAlloys.String(),
		},
		{
			"RM001", "ABC Steel Works", "John Doe", 2, "2024-01-15", "2024-02-15", "Urgent order",
			"RM001-2", "450 HB", "rough turned", "ROLL", "50x100x200", order.RollStatusCasting.String(), order.GradeAlloys.String(),
		},
	}
	return writeWorkbook(w, SampleSheet, rows)
}

func writeWorkbook(w io.Writer, sheet string, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err = f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("size columns: %w", err)
	}

	for i, row := range rows {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return cellErr
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err = f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ReadXLSX reads the first sheet and groups rows into drafts by
// orderNumber, in order of first appearance. Order-level values come from
// the first row of each group. Rows without an orderNumber each become
// their own draft so validation can report them.
func ReadXLSX(r io.Reader) ([]order.Draft, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("file", fmt.Errorf("open workbook: %w", err))
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errs.NewValueIsInvalidError("file")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("file", fmt.Errorf("read rows: %w", err))
	}
	if len(rows) == 0 {
		return []order.Draft{}, nil
	}

	index := headerIndex(rows[0])
	g := newGrouper()
	for _, raw := range rows[1:] {
		row := sheetRow{cells: raw, index: index}
		if row.blank() {
			continue
		}
		g.add(row)
	}

	return g.drafts(), nil
}

func headerIndex(header []string) map[string]int {
	known := make(map[string]string, len(columns))
	for _, c := range columns {
		known[strings.ToLower(c)] = c
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		name, ok := known[key]
		if !ok {
			name, ok = legacyColumns[key]
		}
		if !ok {
			continue
		}
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	return index
}

type sheetRow struct {
	cells []string
	index map[string]int
}

func (r sheetRow) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// date converts Excel serial numbers; other text is passed on for the
// validator to parse.
func (r sheetRow) date(col string) string {
	v := r.get(col)
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Format(sheetDateLayout)
}

func (r sheetRow) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (r sheetRow) roll() (order.RollDraft, bool) {
	hasRoll := false
	for _, c := range rollColumns {
		if r.get(c) != "" {
			hasRoll = true
			break
		}
	}
	if !hasRoll {
		return order.RollDraft{}, false
	}

	return order.RollDraft{
		RollNumber:      r.get(ColRollNumber),
		Hardness:        r.get(ColHardness),
		Machining:       r.get(ColMachining),
		RollDescription: r.get(ColRollDescription),
		Dimensions:      r.get(ColDimensions),
		Status:          r.get(ColStatus),
		Grade:           r.get(ColGrade),
	}, true
}

type grouper struct {
	order    []*order.Draft
	byNumber map[string]*order.Draft
}

func newGrouper() *grouper {
	return &grouper{byNumber: make(map[string]*order.Draft)}
}

func (g *grouper) add(row sheetRow) {
	number := row.get(ColOrderNumber)

	d, ok := g.byNumber[number]
	if !ok || number == "" {
		d = &order.Draft{
			OrderNumber:      number,
			CompanyName:      row.get(ColCompanyName),
			Broker:           row.get(ColBroker),
			Quantity:         row.get(ColQuantity),
			OrderDate:        row.date(ColOrderDate),
			ExpectedDelivery: row.date(ColExpectedDelivery),
			Notes:            row.get(ColNotes),
		}
		g.order = append(g.order, d)
		if number != "" {
			g.byNumber[number] = d
		}
	}

	if r, hasRoll := row.roll(); hasRoll {
		d.Rolls = append(d.Rolls, r)
	}
}

// drafts fills a missing quantity with the number of rolls read.
func (g *grouper) drafts() []order.Draft {
	out := make([]order.Draft, 0, len(g.order))
	for _, d := range g.order {
		if d.Quantity == "" && len(d.Rolls) > 0 {
			d.Quantity = strconv.Itoa(len(d.Rolls))
		}
		out = append(out, *d)
	}
	return out
}
