package interchange

import (
	"fmt"
	"path/filepath"
	"strings"

	"rollmill/internal/pkg/errs"
)

// Format is a supported file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ParseFormat accepts "json" and "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("format", fmt.Errorf("%q is not json or xlsx", s))
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return ContentTypeXLSX
	}
	return ContentTypeJSON
}

// FileName is the download name used for exports.
func (f Format) FileName() string {
	if f == FormatXLSX {
		return "rolling_mill_orders.xlsx"
	}
	return "orders.json"
}
