package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no document matches the lookup
	ErrNotFound = errors.New("record not found")
	// ErrIdentityConflict is returned when a write would violate a unique index
	ErrIdentityConflict = errors.New("record conflicts with an existing record")
)

// UserRepository defines the interface for admin and vendor accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, filter models.UserFilter) ([]*models.User, int64, error)
	Count(ctx context.Context, role, status string) (int64, error)
	CountCreatedByMonth(ctx context.Context, role string, since time.Time) ([]models.MonthBucket, error)
}

// BusinessRepository defines the interface for WhatsApp business connections
type BusinessRepository interface {
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Business, error)
	// Save upserts the connection keyed by its user id
	Save(ctx context.Context, business *models.Business) error
	FindActive(ctx context.Context) ([]*models.Business, error)
}

// TemplateRepository defines the interface for message templates.
// Create and Update return ErrIdentityConflict when (wabaId, name) is taken.
type TemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	FindByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Template, error)
	FindByExternalID(ctx context.Context, userID primitive.ObjectID, externalID string) (*models.Template, error)
	FindByName(ctx context.Context, userID primitive.ObjectID, wabaID, name string) (*models.Template, error)
	FindAll(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, int64, error)
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	// CountBy groups the user's templates created in [from, to] by field ("status" or "category").
	// Zero times leave that side of the range open.
	CountBy(ctx context.Context, userID primitive.ObjectID, field string, from, to time.Time) ([]models.GroupCount, error)
}

// ContactRepository defines the interface for vendor contacts
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	FindByID(ctx context.Context, vendorID, id primitive.ObjectID) (*models.Contact, error)
	FindAll(ctx context.Context, filter models.ContactFilter) ([]*models.Contact, int64, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, vendorID, id primitive.ObjectID) error
	// Count counts contacts of one vendor, or of all vendors when vendorID is zero
	Count(ctx context.Context, vendorID primitive.ObjectID) (int64, error)
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, vendorID, id primitive.ObjectID) (*models.Campaign, error)
	FindAll(ctx context.Context, vendorID primitive.ObjectID, page, limit int) ([]*models.Campaign, int64, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, vendorID, id primitive.ObjectID) error
	// CountByStatus groups campaigns of one vendor, or of all vendors when vendorID is zero
	CountByStatus(ctx context.Context, vendorID primitive.ObjectID) ([]models.GroupCount, error)
}

// SubscriptionPlanRepository defines the interface for pricing plans
type SubscriptionPlanRepository interface {
	Create(ctx context.Context, plan *models.SubscriptionPlan) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*models.SubscriptionPlan, error)
	Update(ctx context.Context, plan *models.SubscriptionPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// MessageRepository defines the interface for campaign message statistics
type MessageRepository interface {
	CountByStatus(ctx context.Context) ([]models.GroupCount, error)
}
