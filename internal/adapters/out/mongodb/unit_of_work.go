package mongodb

import (
	"context"

	"rollmill/internal/adapters/out/mongodb/orderrepo"
	"rollmill/internal/core/ports"

	"go.mongodb.org/mongo-driver/mongo"
)

// UnitOfWorkFactory hands out units of work over one orders collection.
type UnitOfWorkFactory struct {
	collection *mongo.Collection
}

func NewUnitOfWorkFactory(collection *mongo.Collection) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{collection: collection}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{collection: f.collection}
}

// UnitOfWork relies on single-document atomicity: every order command
// writes exactly one document, so Begin, Commit and Rollback have nothing
// to coordinate.
type UnitOfWork struct {
	collection *mongo.Collection
}

func (uow *UnitOfWork) Begin(context.Context) error    { return nil }
func (uow *UnitOfWork) Commit(context.Context) error   { return nil }
func (uow *UnitOfWork) Rollback(context.Context) error { return nil }

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewMongoOrderRepository(uow.collection)
}
