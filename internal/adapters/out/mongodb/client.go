// Package mongodb provides the document-store backend: client lifecycle and
// a Unit of Work over the orders collection.
package mongodb

import (
	"context"
	"fmt"

	"rollmill/internal/adapters/out/mongodb/orderrepo"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client, pings the primary and ensures the order indexes
// exist. The caller owns the client and must Disconnect it.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Collection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	collection := client.Database(database).Collection(orderrepo.CollectionName)
	if err = orderrepo.EnsureIndexes(ctx, collection); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, err
	}

	return client, collection, nil
}
