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

var _ repositories.BusinessRepository = (*BusinessRepository)(nil)

// BusinessRepository handles MongoDB operations for Business connections
type BusinessRepository struct {
	collection *mongo.Collection
}

// NewBusinessRepository creates a new BusinessRepository
func NewBusinessRepository(db *mongo.Database) *BusinessRepository {
	return &BusinessRepository{
		collection: db.Collection(businessesCollection),
	}
}

// FindByUserID finds the connection owned by a user
func (r *BusinessRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Business, error) {
	var business models.Business
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&business); err != nil {
		return nil, translateError(err)
	}
	return &business, nil
}

// Save upserts a connection by user id. connectedAt is only written on insert.
func (r *BusinessRepository) Save(ctx context.Context, business *models.Business) error {
	now := time.Now()
	business.LastUpdated = now
	if business.ConnectedAt.IsZero() {
		business.ConnectedAt = now
	}

	set := bson.M{
		"userId":             business.UserID,
		"wabaId":             business.WabaID,
		"phoneNumberId":      business.PhoneNumberID,
		"businessId":         business.BusinessID,
		"accessToken":        business.AccessToken,
		"businessName":       business.BusinessName,
		"phoneNumber":        business.PhoneNumber,
		"status":             business.Status,
		"signupCompleted":    business.SignupCompleted,
		"permissionsGranted": business.PermissionsGranted,
		"tokenPermissions":   business.TokenPermissions,
		"lastUpdated":        business.LastUpdated,
	}
	if business.AccessTokenExpiresAt != nil {
		set["accessTokenExpiresAt"] = business.AccessTokenExpiresAt
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"connectedAt": business.ConnectedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var saved models.Business
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": business.UserID}, update, opts).Decode(&saved); err != nil {
		return translateError(err)
	}
	*business = saved
	return nil
}

// FindActive lists connections that finished signup and are active
func (r *BusinessRepository) FindActive(ctx context.Context) ([]*models.Business, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"status":          models.BusinessStatusActive,
		"signupCompleted": true,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var businesses []*models.Business
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}
