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

var _ repositories.SubscriptionPlanRepository = (*SubscriptionPlanRepository)(nil)

// SubscriptionPlanRepository handles MongoDB operations for SubscriptionPlan
type SubscriptionPlanRepository struct {
	collection *mongo.Collection
}

// NewSubscriptionPlanRepository creates a new SubscriptionPlanRepository
func NewSubscriptionPlanRepository(db *mongo.Database) *SubscriptionPlanRepository {
	return &SubscriptionPlanRepository{
		collection: db.Collection(plansCollection),
	}
}

// Create inserts a plan
func (r *SubscriptionPlanRepository) Create(ctx context.Context, plan *models.SubscriptionPlan) error {
	plan.ID = primitive.NewObjectID()
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, plan)
	return translateError(err)
}

// FindByID finds a plan by ID
func (r *SubscriptionPlanRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan); err != nil {
		return nil, translateError(err)
	}
	return &plan, nil
}

// FindAll lists plans ordered by position
func (r *SubscriptionPlanRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.SubscriptionPlan, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []*models.SubscriptionPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Update replaces a plan
func (r *SubscriptionPlanRepository) Update(ctx context.Context, plan *models.SubscriptionPlan) error {
	plan.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": plan.ID}, plan)
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a plan
func (r *SubscriptionPlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count counts plans
func (r *SubscriptionPlanRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
