package commands

import (
	"context"
	"errors"

	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/errs"
)

// CreateOrderCommandHandler stores new orders.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the order and returns it with its identifier and timestamps.
// A taken order number is reported as *order.DuplicateOrderNumberError.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	created := cmd.order
	if err := uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, asDuplicate(err, created.OrderNumber())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, asDuplicate(err, created.OrderNumber())
	}

	return created, nil
}

// asDuplicate turns a unique-constraint failure into the domain error.
func asDuplicate(err error, orderNumber string) error {
	if errors.Is(err, errs.ErrObjectAlreadyExists) {
		return order.NewDuplicateOrderNumberError(orderNumber, err)
	}
	return err
}
