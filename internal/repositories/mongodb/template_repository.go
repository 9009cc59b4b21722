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

var _ repositories.TemplateRepository = (*TemplateRepository)(nil)

var templateSortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"name":      true,
	"status":    true,
	"category":  true,
}

// TemplateRepository implements the repositories.TemplateRepository interface.
// Timestamps are owned by the caller.
type TemplateRepository struct {
	collection *mongo.Collection
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{
		collection: db.Collection(templatesCollection),
	}
}

func (r *TemplateRepository) findOne(ctx context.Context, filter bson.M) (*models.Template, error) {
	var template models.Template
	if err := r.collection.FindOne(ctx, filter).Decode(&template); err != nil {
		return nil, translateError(err)
	}
	return &template, nil
}

// FindByID finds a template owned by userID
func (r *TemplateRepository) FindByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Template, error) {
	return r.findOne(ctx, bson.M{"_id": id, "userId": userID})
}

// FindByExternalID finds a template by the platform's template id
func (r *TemplateRepository) FindByExternalID(ctx context.Context, userID primitive.ObjectID, externalID string) (*models.Template, error) {
	return r.findOne(ctx, bson.M{"templateId": externalID, "userId": userID})
}

// FindByName finds a template by name within one business account
func (r *TemplateRepository) FindByName(ctx context.Context, userID primitive.ObjectID, wabaID, name string) (*models.Template, error) {
	return r.findOne(ctx, bson.M{"name": name, "wabaId": wabaID, "userId": userID})
}

// FindAll lists templates matching filter with the total match count
func (r *TemplateRepository) FindAll(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, int64, error) {
	query := bson.M{"userId": filter.UserID}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["$or"] = searchAny(filter.Search, "name", "body.text")
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	sortField := filter.SortBy
	if !templateSortFields[sortField] {
		sortField = "createdAt"
	}
	direction := 1
	if filter.SortDesc {
		direction = -1
	}

	opts := pageOptions(filter.Page, filter.Limit, bson.D{{Key: sortField, Value: direction}, {Key: "_id", Value: direction}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	templates := []*models.Template{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// Create inserts a new template
func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, template)
	return translateError(err)
}

// Update replaces a template
func (r *TemplateRepository) Update(ctx context.Context, template *models.Template) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": template.ID, "userId": template.UserID}, template)
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a template owned by userID
func (r *TemplateRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// CountBy groups a user's templates by status or category
func (r *TemplateRepository) CountBy(ctx context.Context, userID primitive.ObjectID, field string, from, to time.Time) ([]models.GroupCount, error) {
	match := bson.M{"userId": userID}
	created := bson.M{}
	if !from.IsZero() {
		created["$gte"] = from
	}
	if !to.IsZero() {
		created["$lte"] = to
	}
	if len(created) > 0 {
		match["createdAt"] = created
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
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
