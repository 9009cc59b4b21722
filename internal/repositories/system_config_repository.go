package repositories

import (
	"context"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SystemConfigRepository defines the interface for encrypted configuration entries.
// Values pass through untouched; encryption is the caller's concern.
type SystemConfigRepository interface {
	// FindAll returns every entry ordered by category then key
	FindAll(ctx context.Context) ([]*models.SystemConfig, error)

	// FindPublic returns the entries flagged public
	FindPublic(ctx context.Context) ([]*models.SystemConfig, error)

	FindByKey(ctx context.Context, key string) (*models.SystemConfig, error)

	// UpsertByKey inserts or replaces the entry with config.Key and returns the stored document
	UpsertByKey(ctx context.Context, config *models.SystemConfig) (*models.SystemConfig, error)

	Delete(ctx context.Context, id primitive.ObjectID) error
}
