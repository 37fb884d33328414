package interchange

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"rollmill/internal/core/domain/model/order"
)

// OrderRecord is the JSON shape of one order, identical to the REST
// representation. id, createdAt and updatedAt are written on export and
// ignored on import.
type OrderRecord struct {
	ID               string   `json:"id,omitempty"`
	OrderNumber      string   `json:"orderNumber"`
	CompanyName      string   `json:"companyName"`
	Broker           string   `json:"broker"`
	Quantity         Quantity `json:"quantity"`
	OrderDate        string   `json:"orderDate"`
	ExpectedDelivery string   `json:"expectedDelivery"`
	Notes            string   `json:"notes"`
	Rolls            RollList `json:"rolls"`
	CreatedAt        string   `json:"createdAt,omitempty"`
	UpdatedAt        string   `json:"updatedAt,omitempty"`
}

type RollRecord struct {
	RollNumber      string `json:"rollNumber"`
	Hardness        string `json:"hardness"`
	Machining       string `json:"machining"`
	RollDescription string `json:"rollDescription"`
	Dimensions      string `json:"dimensions"`
	Status          string `json:"status"`
	Grade           string `json:"grade"`
}

// RollList decodes the rolls field. A value that is not an array decodes to
// an empty list, so the order is rejected for having no rolls instead of
// failing to parse. An array element that is not an object becomes a roll
// with no fields set.
type RollList []RollRecord

func (l *RollList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		*l = nil
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	rolls := make(RollList, 0, len(elems))
	for _, e := range elems {
		var r RollRecord
		if err := json.Unmarshal(e, &r); err != nil {
			r = RollRecord{}
		}
		rolls = append(rolls, r)
	}
	*l = rolls
	return nil
}

// Drafts converts the list to roll input. The result is never nil.
func (l RollList) Drafts() []order.RollDraft {
	out := make([]order.RollDraft, 0, len(l))
	for _, r := range l {
		out = append(out, order.RollDraft{
			RollNumber:      r.RollNumber,
			Hardness:        r.Hardness,
			Machining:       r.Machining,
			RollDescription: r.RollDescription,
			Dimensions:      r.Dimensions,
			Status:          r.Status,
			Grade:           r.Grade,
		})
	}
	return out
}

// Quantity keeps the raw text of the quantity field. Files written by hand
// carry it as a number or as a quoted string; both are accepted.
type Quantity string

func (q Quantity) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(q)); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(q))
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*q = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*q = Quantity(n.String())
	}
	return nil
}

// RecordFromOrder renders a stored order.
func RecordFromOrder(o *order.Order) OrderRecord {
	rolls := o.Rolls()
	records := make(RollList, 0, len(rolls))
	for _, r := range rolls {
		records = append(records, RollRecord{
			RollNumber:      r.RollNumber(),
			Hardness:        r.Hardness(),
			Machining:       r.Machining(),
			RollDescription: r.Description(),
			Dimensions:      r.Dimensions(),
			Status:          r.Status().String(),
			Grade:           r.Grade().String(),
		})
	}

	rec := OrderRecord{
		OrderNumber:      o.OrderNumber(),
		CompanyName:      o.CompanyName(),
		Broker:           o.Broker(),
		Quantity:         Quantity(strconv.Itoa(o.Quantity())),
		OrderDate:        formatTime(o.OrderDate()),
		ExpectedDelivery: formatTime(o.ExpectedDelivery()),
		Notes:            o.Notes(),
		Rolls:            records,
	}
	if !o.ID().IsZero() {
		rec.ID = o.ID().String()
		rec.CreatedAt = formatTime(o.CreatedAt())
		rec.UpdatedAt = formatTime(o.UpdatedAt())
	}
	return rec
}

// Draft turns the record back into create input.
func (r OrderRecord) Draft() order.Draft {
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

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
