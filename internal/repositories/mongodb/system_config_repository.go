package mongodb

import (
	"context"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.SystemConfigRepository = (*SystemConfigRepository)(nil)

// SystemConfigRepository implements the repositories.SystemConfigRepository interface
type SystemConfigRepository struct {
	collection *mongo.Collection
}

// NewSystemConfigRepository creates a new SystemConfigRepository
func NewSystemConfigRepository(db *mongo.Database) *SystemConfigRepository {
	return &SystemConfigRepository{
		collection: db.Collection(configsCollection),
	}
}

func (r *SystemConfigRepository) find(ctx context.Context, filter bson.M) ([]*models.SystemConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "key", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	configs := []*models.SystemConfig{}
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// FindAll finds all configuration entries
func (r *SystemConfigRepository) FindAll(ctx context.Context) ([]*models.SystemConfig, error) {
	return r.find(ctx, bson.M{})
}

// FindPublic finds the entries exposed to unauthenticated clients
func (r *SystemConfigRepository) FindPublic(ctx context.Context) ([]*models.SystemConfig, error) {
	return r.find(ctx, bson.M{"isPublic": true})
}

// FindByKey finds a configuration entry by key
func (r *SystemConfigRepository) FindByKey(ctx context.Context, key string) (*models.SystemConfig, error) {
	var config models.SystemConfig
	if err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&config); err != nil {
		return nil, translateError(err)
	}
	return &config, nil
}

// UpsertByKey creates or updates the entry keyed by config.Key
func (r *SystemConfigRepository) UpsertByKey(ctx context.Context, config *models.SystemConfig) (*models.SystemConfig, error) {
	now := time.Now()
	filter := bson.M{"key": config.Key}
	update := bson.M{
		"$set": bson.M{
			"value":       config.Value,
			"description": config.Description,
			"category":    config.Category,
			"isPublic":    config.IsPublic,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"key":       config.Key,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.SystemConfig
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, translateError(err)
	}
	return &saved, nil
}

// Delete deletes a configuration entry by id
func (r *SystemConfigRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
