// Package ports defines the contracts between the order domain and the
// storage backends.
package ports

import (
	"context"

	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Errors:
//   - errs.ErrObjectNotFound when no order has the given id
//   - errs.ErrObjectAlreadyExists when the order number is already taken
//   - errs.ErrStorageUnavailable for driver and connectivity failures
type OrderRepository interface {
	// Add stores a new order. It assigns the identifier and sets createdAt
	// and updatedAt on the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces the stored order with the aggregate and bumps its
	// updatedAt.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns every order, newest createdAt first.
	List(ctx context.Context) ([]*order.Order, error)

	// Delete removes the order immediately and irreversibly.
	Delete(ctx context.Context, id kernel.UUID) error
}

// OrderReader is the read side used by queries.
type OrderReader interface {
	List(ctx context.Context) ([]*order.Order, error)
}
