package commands

import (
	"context"

	"rollmill/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler loads an order, applies the changes and stores
// the result within one unit of work.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the updated order. Missing orders are reported with
// errs.ErrObjectNotFound, a taken order number with
// *order.DuplicateOrderNumberError.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = current.Apply(cmd.changes); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, asDuplicate(err, current.OrderNumber())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, asDuplicate(err, current.OrderNumber())
	}

	return current, nil
}
