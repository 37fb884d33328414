package commands

import (
	"errors"

	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand carries a partial update of one order. Fields absent
// from the patch are left untouched; supplied rolls replace the roll list.
type UpdateOrderCommand struct {
	orderID kernel.UUID
	changes order.Changes

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates the identifier and the fields present in
// the patch.
func NewUpdateOrderCommand(orderID kernel.UUID, patch order.Patch) (UpdateOrderCommand, error) {
	changes, patchErr := order.ValidateForUpdate(patch)
	if err := errors.Join(orderID.Validate(), patchErr); err != nil {
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		orderID: orderID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
