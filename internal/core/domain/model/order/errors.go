package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField         = errors.New("missing required field")
	ErrEmptyRollSet         = errors.New("at least one roll is required")
	ErrInvalidRoll          = errors.New("roll is missing required fields")
	ErrInvalidValue         = errors.New("value is not allowed")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
)

// ViolationKind classifies a single validation failure.
type ViolationKind string

const (
	MissingField ViolationKind = "MissingField"
	EmptyRollSet ViolationKind = "EmptyRollSet"
	InvalidRoll  ViolationKind = "InvalidRoll"
	InvalidValue ViolationKind = "InvalidValue"
)

func (k ViolationKind) sentinel() error {
	switch k {
	case MissingField:
		return ErrMissingField
	case EmptyRollSet:
		return ErrEmptyRollSet
	case InvalidRoll:
		return ErrInvalidRoll
	default:
		return ErrInvalidValue
	}
}

// Violation is one broken rule. RollIndex is 1-based and is 0 for
// order-level fields.
type Violation struct {
	Kind      ViolationKind
	Field     string
	RollIndex int
	Message   string
}

// ValidationError lists every violation found in a draft or patch.
// errors.Is matches the sentinel of each kind present.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

func (e *ValidationError) Unwrap() []error {
	seen := make(map[ViolationKind]bool, 4)
	out := make([]error, 0, 4)
	for _, v := range e.Violations {
		if seen[v.Kind] {
			continue
		}
		seen[v.Kind] = true
		out = append(out, v.Kind.sentinel())
	}
	return out
}

// Messages returns the human readable text of every violation, in the order
// they were found.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Message
	}
	return out
}

// DuplicateOrderNumberError is reported when storage rejects an order number
// that is already taken. It is detected by the unique constraint, never by a
// pre-check.
type DuplicateOrderNumberError struct {
	OrderNumber string
	Cause       error
}

func NewDuplicateOrderNumberError(orderNumber string, cause error) *DuplicateOrderNumberError {
	return &DuplicateOrderNumberError{
		OrderNumber: orderNumber,
		Cause:       cause,
	}
}

func (e *DuplicateOrderNumberError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrDuplicateOrderNumber, e.OrderNumber, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrDuplicateOrderNumber, e.OrderNumber)
}

func (e *DuplicateOrderNumberError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrDuplicateOrderNumber}
	}
	return []error{ErrDuplicateOrderNumber, e.Cause}
}
