package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrIdentityAlreadyAssigned is returned when storage tries to assign an
	// id to an order that already has one.
	ErrIdentityAlreadyAssigned = errors.New("order identity is already assigned")
)

// Order is the aggregate root of the service: a customer order placed with
// the mill, made of one or more rolls.
//
// Order follows these invariants:
//   - orderNumber and companyName are non-blank
//   - quantity is at least 1 (it is expected to match the roll count, but
//     that is not enforced)
//   - orderDate and expectedDelivery are set
//   - there is at least one roll
//
// The identifier and the createdAt/updatedAt timestamps belong to storage:
// a new order has none until a repository calls AssignIdentity.
type Order struct {
	id kernel.UUID

	number      string
	companyName string
	broker      string
	quantity    int

	orderDate        time.Time
	expectedDelivery time.Time

	notes string
	rolls []Roll

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// Params carries the attributes of an order into NewOrder and RestoreOrder.
type Params struct {
	OrderNumber      string
	CompanyName      string
	Broker           string
	Quantity         int
	OrderDate        time.Time
	ExpectedDelivery time.Time
	Notes            string
	Rolls            []Roll
}

// NewOrder creates an order that has not been stored yet. Callers coming from
// user input should go through ValidateForCreate, which reports violations
// in a form suitable for clients; NewOrder only guards the invariants.
func NewOrder(p Params) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setNumber(p.OrderNumber),
		o.setCompanyName(p.CompanyName),
		o.setQuantity(p.Quantity),
		o.setOrderDate(p.OrderDate),
		o.setExpectedDelivery(p.ExpectedDelivery),
		o.setRolls(p.Rolls),
	); err != nil {
		return nil, err
	}
	o.broker = p.Broker
	o.notes = p.Notes

	return o, nil
}

// RestoreOrder rehydrates a stored order. It is meant for repositories.
func RestoreOrder(id kernel.UUID, p Params, createdAt, updatedAt time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(p)
	if err != nil {
		return nil, fmt.Errorf("restore order %s: %w", id, err)
	}
	o.id = id
	o.createdAt = createdAt
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignIdentity gives a new order its id and creation timestamps.
func (o *Order) AssignIdentity(id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if !o.id.IsZero() {
		return ErrIdentityAlreadyAssigned
	}
	o.id = id
	o.createdAt = at
	o.updatedAt = at
	return nil
}

// Touch records a successful write.
func (o *Order) Touch(at time.Time) {
	o.updatedAt = at
}

// Apply merges validated changes into the order. Supplied rolls replace the
// whole roll list.
func (o *Order) Apply(c Changes) error {
	next := *o
	next.rolls = o.Rolls()

	var errList []error
	if c.orderNumber != nil {
		errList = append(errList, next.setNumber(*c.orderNumber))
	}
	if c.companyName != nil {
		errList = append(errList, next.setCompanyName(*c.companyName))
	}
	if c.broker != nil {
		next.broker = *c.broker
	}
	if c.quantity != nil {
		errList = append(errList, next.setQuantity(*c.quantity))
	}
	if c.orderDate != nil {
		errList = append(errList, next.setOrderDate(*c.orderDate))
	}
	if c.expectedDelivery != nil {
		errList = append(errList, next.setExpectedDelivery(*c.expectedDelivery))
	}
	if c.notes != nil {
		next.notes = *c.notes
	}
	if c.rolls != nil {
		errList = append(errList, next.setRolls(c.rolls))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	*o = next
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) OrderNumber() string {
	return o.number
}

func (o *Order) CompanyName() string {
	return o.companyName
}

func (o *Order) Broker() string {
	return o.broker
}

func (o *Order) Quantity() int {
	return o.quantity
}

func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

func (o *Order) ExpectedDelivery() time.Time {
	return o.expectedDelivery
}

func (o *Order) Notes() string {
	return o.notes
}

// Rolls returns a copy of the roll list.
func (o *Order) Rolls() []Roll {
	out := make([]Roll, len(o.rolls))
	copy(out, o.rolls)
	return out
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Stage derives the order-level progress from its rolls.
func (o *Order) Stage() Stage {
	return StageOf(o.rolls)
}

// IsOverdue reports whether delivery was expected before now and the order
// is still not completed.
func (o *Order) IsOverdue(now time.Time) bool {
	return o.expectedDelivery.Before(now) && o.Stage() != StageCompleted
}

// HasRollWith reports whether any roll satisfies match.
func (o *Order) HasRollWith(match func(Roll) bool) bool {
	for _, r := range o.rolls {
		if match(r) {
			return true
		}
	}
	return false
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

func (o *Order) setCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("companyName")
	}
	o.companyName = name
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setOrderDate(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("orderDate")
	}
	o.orderDate = at
	return nil
}

func (o *Order) setExpectedDelivery(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("expectedDelivery")
	}
	o.expectedDelivery = at
	return nil
}

func (o *Order) setRolls(rolls []Roll) error {
	if len(rolls) == 0 {
		return errs.NewValueIsRequiredError("rolls")
	}
	for i, r := range rolls {
		if r.rollNumber == "" || r.hardness == "" {
			return errs.NewValueIsInvalidErrorWithCause("rolls", fmt.Errorf("roll %d was not created via NewRoll", i+1))
		}
	}
	o.rolls = make([]Roll, len(rolls))
	copy(o.rolls, rolls)
	return nil
}
