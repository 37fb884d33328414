package interchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/errs"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteJSON writes orders as an indented JSON array.
func WriteJSON(w io.Writer, orders []*order.Order) error {
	records := make([]OrderRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, RecordFromOrder(o))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	return nil
}

// ReadJSON accepts an array of orders or a single order object.
func ReadJSON(r io.Reader) ([]order.Draft, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("file", errors.New("empty file"))
	}

	var records []OrderRecord
	if data[0] == '{' {
		var single OrderRecord
		err = json.Unmarshal(data, &single)
		records = []OrderRecord{single}
	} else {
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("file", fmt.Errorf("decode orders: %w", err))
	}

	drafts := make([]order.Draft, 0, len(records))
	for _, rec := range records {
		drafts = append(drafts, rec.Draft())
	}
	return drafts, nil
}
