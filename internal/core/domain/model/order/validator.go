package order

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayouts are the accepted spellings of orderDate and expectedDelivery.
var DateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01-02-06",
}

const defaultQuantity = 1

// ValidateForCreate checks a draft and builds the order it describes.
//
// Every violation is collected before returning, so a *ValidationError
// names all missing fields and all bad rolls at once. On success the dates
// are parsed, quantity is coerced to an integer (decimals are truncated and
// unreadable text becomes 1), blank roll statuses become Pending and enum
// values take their canonical spelling.
func ValidateForCreate(d Draft) (*Order, error) {
	var v violations

	required := []struct {
		field string
		value string
	}{
		{"orderNumber", d.OrderNumber},
		{"companyName", d.CompanyName},
		{"quantity", d.Quantity},
		{"orderDate", d.OrderDate},
		{"expectedDelivery", d.ExpectedDelivery},
	}
	for _, r := range required {
		if isBlank(r.value) {
			v.missing(r.field)
		}
	}

	quantity := defaultQuantity
	if !isBlank(d.Quantity) {
		quantity = v.quantity(d.Quantity)
	}

	var orderDate, expectedDelivery time.Time
	if !isBlank(d.OrderDate) {
		orderDate = v.date("orderDate", d.OrderDate)
	}
	if !isBlank(d.ExpectedDelivery) {
		expectedDelivery = v.date("expectedDelivery", d.ExpectedDelivery)
	}

	rolls := v.rolls(d.Rolls)

	if err := v.err(); err != nil {
		return nil, err
	}

	return NewOrder(Params{
		OrderNumber:      strings.TrimSpace(d.OrderNumber),
		CompanyName:      d.CompanyName,
		Broker:           d.Broker,
		Quantity:         quantity,
		OrderDate:        orderDate,
		ExpectedDelivery: expectedDelivery,
		Notes:            d.Notes,
		Rolls:            rolls,
	})
}

// ValidateForUpdate applies the create rules to the fields present in the
// patch only. A present required field may not be blank and present rolls
// must be a non-empty list of valid rolls.
func ValidateForUpdate(p Patch) (Changes, error) {
	var (
		v violations
		c Changes
	)

	requiredText := func(field string, value *string) *string {
		if value == nil {
			return nil
		}
		if isBlank(*value) {
			v.missing(field)
			return nil
		}
		s := *value
		return &s
	}

	c.orderNumber = requiredText("orderNumber", p.OrderNumber)
	if c.orderNumber != nil {
		trimmed := strings.TrimSpace(*c.orderNumber)
		c.orderNumber = &trimmed
	}
	c.companyName = requiredText("companyName", p.CompanyName)
	c.broker = copyText(p.Broker)
	c.notes = copyText(p.Notes)

	if q := requiredText("quantity", p.Quantity); q != nil {
		quantity := v.quantity(*q)
		c.quantity = &quantity
	}
	if s := requiredText("orderDate", p.OrderDate); s != nil {
		at := v.date("orderDate", *s)
		c.orderDate = &at
	}
	if s := requiredText("expectedDelivery", p.ExpectedDelivery); s != nil {
		at := v.date("expectedDelivery", *s)
		c.expectedDelivery = &at
	}
	if p.Rolls != nil {
		c.rolls = v.rolls(*p.Rolls)
	}

	if err := v.err(); err != nil {
		return Changes{}, err
	}
	return c, nil
}

// ParseDate reads a date in any of DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if at, err := time.Parse(layout, s); err == nil {
			return at, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a recognised date", s)
}

// parseQuantity reads quantity text the lenient way: integers as-is,
// decimals truncated, anything else 1. The second result is false when the
// number does not fit in an int.
func parseQuantity(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err == nil {
		return n, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	switch {
	case errors.Is(err, strconv.ErrRange) && f != 0:
		return 0, false
	case err != nil || math.IsNaN(f) || math.IsInf(f, 0):
		return defaultQuantity, true
	// float64(math.MaxInt) rounds up to 2^63, which is already too big.
	case f >= float64(math.MaxInt) || f < float64(math.MinInt):
		return 0, false
	}
	return int(f), true
}

type violations struct {
	list []Violation
}

func (v *violations) add(kind ViolationKind, field string, rollIndex int, msg string) {
	v.list = append(v.list, Violation{Kind: kind, Field: field, RollIndex: rollIndex, Message: msg})
}

func (v *violations) missing(field string) {
	v.add(MissingField, field, 0, fmt.Sprintf("%s is required", field))
}

func (v *violations) quantity(raw string) int {
	q, ok := parseQuantity(raw)
	if !ok {
		v.add(InvalidValue, "quantity", 0, fmt.Sprintf("quantity %q is out of range", strings.TrimSpace(raw)))
		return 0
	}
	if q < 1 {
		v.add(InvalidValue, "quantity", 0, fmt.Sprintf("quantity must be at least 1, got %d", q))
	}
	return q
}

func (v *violations) date(field, raw string) time.Time {
	at, err := ParseDate(raw)
	if err != nil {
		v.add(InvalidValue, field, 0, fmt.Sprintf("%s: %v", field, err))
	}
	// Millisecond precision is the coarser of the two stores.
	return at.Truncate(time.Millisecond)
}

func (v *violations) rolls(drafts []RollDraft) []Roll {
	if len(drafts) == 0 {
		v.add(EmptyRollSet, "rolls", 0, "At least one roll is required")
		return nil
	}

	rolls := make([]Roll, 0, len(drafts))
	for i, d := range drafts {
		idx := i + 1
		ok := true

		if isBlank(d.RollNumber) || isBlank(d.Hardness) {
			v.add(InvalidRoll, "rolls", idx,
				fmt.Sprintf("Roll %d is missing required fields (rollNumber and hardness are required)", idx))
			ok = false
		}

		status, err := ParseRollStatus(d.Status)
		if err != nil {
			v.add(InvalidValue, "status", idx, fmt.Sprintf("Roll %d has invalid status %q", idx, strings.TrimSpace(d.Status)))
			ok = false
		}
		grade, err := ParseGrade(d.Grade)
		if err != nil {
			v.add(InvalidValue, "grade", idx, fmt.Sprintf("Roll %d has invalid grade %q", idx, strings.TrimSpace(d.Grade)))
			ok = false
		}
		if !ok {
			continue
		}

		r, err := NewRoll(RollParams{
			RollNumber:  d.RollNumber,
			Hardness:    d.Hardness,
			Machining:   d.Machining,
			Description: d.RollDescription,
			Dimensions:  d.Dimensions,
			Status:      status,
			Grade:       grade,
		})
		if err != nil {
			v.add(InvalidRoll, "rolls", idx, fmt.Sprintf("Roll %d: %v", idx, err))
			continue
		}
		rolls = append(rolls, r)
	}
	return rolls
}

func (v *violations) err() error {
	if len(v.list) == 0 {
		return nil
	}
	return &ValidationError{Violations: v.list}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func copyText(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
