package activity

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"project-manager-api/internal/domain/activity"
)

type collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type Repository struct {
	collection collection
}

func NewRepository(c *mongo.Collection) activity.Repository {
	return &Repository{collection: c}
}

func (r *Repository) AppendActivity(ctx context.Context, rec activity.Record) error {
	_, err := r.collection.InsertOne(ctx, toDocument(rec))
	return err
}
