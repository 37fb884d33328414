package commands

import (
	"errors"

	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new customer order.
// The draft is validated when the command is built, so a constructed command
// always carries a valid order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(order.Draft{
//	    OrderNumber:      "RM001",
//	    CompanyName:      "ABC Steel Works",
//	    Quantity:         "1",
//	    OrderDate:        "2024-01-15",
//	    ExpectedDelivery: "2024-02-15",
//	    Rolls:            []order.RollDraft{{RollNumber: "R-1", Hardness: "450 HB"}},
//	})
//	if err != nil {
//	    return err // *order.ValidationError
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	order *order.Order

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the draft. The returned error is an
// *order.ValidationError listing every violation.
func NewCreateOrderCommand(draft order.Draft) (CreateOrderCommand, error) {
	o, err := order.ValidateForCreate(draft)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		order: o,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderNumber returns the number the new order will be stored under.
func (c CreateOrderCommand) OrderNumber() string {
	return c.order.OrderNumber()
}
