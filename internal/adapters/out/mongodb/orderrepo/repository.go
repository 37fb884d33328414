package orderrepo

import (
	"context"
	"errors"
	"time"

	"rollmill/internal/core/domain/model/kernel"
	"rollmill/internal/core/domain/model/order"
	"rollmill/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepository implements ports.OrderRepository on one collection.
// Every write touches a single document, which mongo applies atomically.
type MongoOrderRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoOrderRepository(collection *mongo.Collection) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: collection,
		now:        time.Now,
	}
}

// EnsureIndexes creates the unique orderNumber index and the createdAt
// index used for listing. It is idempotent.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderNumber", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("orderNumber_unique"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
	})
	if err != nil {
		return errs.NewStorageUnavailableError("create order indexes", err)
	}
	return nil
}

func (r *MongoOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := kernel.NewUUID()
	at := r.timestamp()

	doc := fromDomain(aggregate)
	doc.ID = id.String()
	doc.CreatedAt = at
	doc.UpdatedAt = at

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translate("add order", aggregate.OrderNumber(), err)
	}

	return aggregate.AssignIdentity(id, at)
}

// Update replaces the whole document, keeping its createdAt.
func (r *MongoOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.ID().Validate(); err != nil {
		return err
	}

	at := r.timestamp()
	doc := fromDomain(aggregate)
	doc.UpdatedAt = at

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return translate("update order", aggregate.OrderNumber(), err)
	}
	if result.MatchedCount == 0 {
		return errs.NewObjectNotFoundError("id", doc.ID)
	}

	aggregate.Touch(at)
	return nil
}

func (r *MongoOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var doc OrderDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewObjectNotFoundErrorWithCause("id", id.String(), err)
		}
		return nil, errs.NewStorageUnavailableError("get order", err)
	}

	return toDomain(doc)
}

// List returns all orders, newest createdAt first.
func (r *MongoOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errs.NewStorageUnavailableError("list orders", err)
	}

	var docs []OrderDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, errs.NewStorageUnavailableError("list orders", err)
	}

	orders := make([]*order.Order, 0, len(docs))
	for _, doc := range docs {
		o, convErr := toDomain(doc)
		if convErr != nil {
			return nil, convErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errs.NewStorageUnavailableError("delete order", err)
	}
	if result.DeletedCount == 0 {
		return errs.NewObjectNotFoundError("id", id.String())
	}

	return nil
}

// timestamp matches the millisecond precision of BSON dates.
func (r *MongoOrderRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

func translate(operation, orderNumber string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errs.NewObjectAlreadyExistsErrorWithCause("orderNumber", orderNumber, err)
	}
	return errs.NewStorageUnavailableError(operation, err)
}
