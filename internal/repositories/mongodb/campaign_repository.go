package mongodb

import (
	"context"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repositories.CampaignRepository = (*CampaignRepository)(nil)

// CampaignRepository implements the repositories.CampaignRepository interface
type CampaignRepository struct {
	collection *mongo.Collection
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{
		collection: db.Collection(campaignsCollection),
	}
}

// FindByID finds a campaign owned by vendorID
func (r *CampaignRepository) FindByID(ctx context.Context, vendorID, id primitive.ObjectID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "vendorId": vendorID}).Decode(&campaign); err != nil {
		return nil, translateError(err)
	}
	return &campaign, nil
}

// FindAll lists a vendor's campaigns, newest first
func (r *CampaignRepository) FindAll(ctx context.Context, vendorID primitive.ObjectID, page, limit int) ([]*models.Campaign, int64, error) {
	query := bson.M{"vendorId": vendorID}
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, query, pageOptions(page, limit, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	campaigns := []*models.Campaign{}
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// Create creates a new campaign
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.ID = primitive.NewObjectID()
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, campaign)
	return translateError(err)
}

// Update updates a campaign
func (r *CampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	campaign.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": campaign.ID, "vendorId": campaign.VendorID}, campaign)
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a campaign
func (r *CampaignRepository) Delete(ctx context.Context, vendorID, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "vendorId": vendorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// CountByStatus groups campaigns by status
func (r *CampaignRepository) CountByStatus(ctx context.Context, vendorID primitive.ObjectID) ([]models.GroupCount, error) {
	match := bson.M{}
	if !vendorID.IsZero() {
		match["vendorId"] = vendorID
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []models.GroupCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
