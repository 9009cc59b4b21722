package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/whatsapp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CredentialResolver looks up the platform credentials of a tenant
type CredentialResolver interface {
	Resolve(ctx context.Context, userID primitive.ObjectID) (whatsapp.Credentials, error)
}

// BusinessCredentialResolver resolves credentials from the tenant's stored
// business connection.
type BusinessCredentialResolver struct {
	businesses repositories.BusinessRepository
	now        func() time.Time
}

// NewBusinessCredentialResolver creates a new BusinessCredentialResolver
func NewBusinessCredentialResolver(businesses repositories.BusinessRepository) *BusinessCredentialResolver {
	return &BusinessCredentialResolver{businesses: businesses, now: time.Now}
}

// Resolve returns ErrCredentialMissing when the tenant has no connection,
// the connection lacks an account id or token, or the token has expired.
func (r *BusinessCredentialResolver) Resolve(ctx context.Context, userID primitive.ObjectID) (whatsapp.Credentials, error) {
	business, err := r.businesses.FindByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return whatsapp.Credentials{}, fmt.Errorf("%w: no business connection", ErrCredentialMissing)
	}
	if err != nil {
		return whatsapp.Credentials{}, err
	}

	switch {
	case business.WabaID == "":
		return whatsapp.Credentials{}, fmt.Errorf("%w: signup not completed", ErrCredentialMissing)
	case business.AccessToken == "":
		return whatsapp.Credentials{}, fmt.Errorf("%w: no access token", ErrCredentialMissing)
	case business.AccessTokenExpiresAt != nil && !business.AccessTokenExpiresAt.After(r.now()):
		return whatsapp.Credentials{}, fmt.Errorf("%w: access token expired", ErrCredentialMissing)
	}

	return whatsapp.Credentials{
		AccountID:     business.WabaID,
		BusinessID:    business.BusinessID,
		AccessToken:   business.AccessToken,
		PhoneNumberID: business.PhoneNumberID,
	}, nil
}
