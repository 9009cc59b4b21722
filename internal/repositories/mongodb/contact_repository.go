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

var _ repositories.ContactRepository = (*ContactRepository)(nil)

// ContactRepository handles MongoDB operations for Contact
type ContactRepository struct {
	collection *mongo.Collection
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{
		collection: db.Collection(contactsCollection),
	}
}

// Create inserts a contact; a duplicate phone for the vendor is ErrIdentityConflict
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	contact.ID = primitive.NewObjectID()
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, contact)
	return translateError(err)
}

// FindByID finds a contact owned by vendorID
func (r *ContactRepository) FindByID(ctx context.Context, vendorID, id primitive.ObjectID) (*models.Contact, error) {
	var contact models.Contact
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "vendorId": vendorID}).Decode(&contact); err != nil {
		return nil, translateError(err)
	}
	return &contact, nil
}

// FindAll lists a vendor's contacts, newest first
func (r *ContactRepository) FindAll(ctx context.Context, filter models.ContactFilter) ([]*models.Contact, int64, error) {
	query := bson.M{"vendorId": filter.VendorID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["$or"] = searchAny(filter.Search, "firstName", "lastName", "phoneNumber", "email", "company")
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.collection.Find(ctx, query, pageOptions(filter.Page, filter.Limit, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	contacts := []*models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// Update replaces a contact
func (r *ContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	contact.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": contact.ID, "vendorId": contact.VendorID}, contact)
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a contact owned by vendorID
func (r *ContactRepository) Delete(ctx context.Context, vendorID, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "vendorId": vendorID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count counts contacts
func (r *ContactRepository) Count(ctx context.Context, vendorID primitive.ObjectID) (int64, error) {
	query := bson.M{}
	if !vendorID.IsZero() {
		query["vendorId"] = vendorID
	}
	return r.collection.CountDocuments(ctx, query)
}
