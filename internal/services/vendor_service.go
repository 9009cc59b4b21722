package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorService lets admins manage vendor accounts
type VendorService struct {
	users repositories.UserRepository
	now   func() time.Time
}

// NewVendorService creates a new VendorService
func NewVendorService(users repositories.UserRepository) *VendorService {
	return &VendorService{users: users, now: time.Now}
}

// ListVendors returns a page of vendors and the total match count
func (s *VendorService) ListVendors(ctx context.Context, filter models.UserFilter) ([]*models.User, int64, error) {
	filter.Role = models.RoleVendor
	return s.users.FindAll(ctx, filter)
}

// GetVendor returns a vendor by id; admins are not vendors
func (s *VendorService) GetVendor(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleVendor {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

// CreateVendor creates a verified vendor account
func (s *VendorService) CreateVendor(ctx context.Context, input models.VendorInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.FirstName) == "" {
		return nil, validationError("first name and email are required")
	}
	if len(input.Password) < 6 {
		return nil, validationError("password must be at least 6 characters")
	}
	status, err := parseUserStatus(input.Status)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	vendor := &models.User{
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		Email:           email,
		Password:        hash,
		WhatsappNumber:  input.WhatsappNumber,
		BusinessName:    input.BusinessName,
		Role:            models.RoleVendor,
		Status:          status,
		IsEmailVerified: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.users.Create(ctx, vendor); err != nil {
		if errors.Is(err, repositories.ErrIdentityConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return vendor, nil
}

// UpdateVendor applies the non-empty fields of input. The password is only
// rehashed when one is given.
func (s *VendorService) UpdateVendor(ctx context.Context, id primitive.ObjectID, input models.VendorInput) (*models.User, error) {
	vendor, err := s.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		vendor.FirstName = strings.TrimSpace(input.FirstName)
	}
	if input.LastName != "" {
		vendor.LastName = strings.TrimSpace(input.LastName)
	}
	if input.Email != "" {
		vendor.Email = normalizeEmail(input.Email)
	}
	if input.WhatsappNumber != "" {
		vendor.WhatsappNumber = input.WhatsappNumber
	}
	if input.BusinessName != "" {
		vendor.BusinessName = input.BusinessName
	}
	if input.Status != "" {
		if vendor.Status, err = parseUserStatus(input.Status); err != nil {
			return nil, err
		}
	}
	if input.Password != "" {
		if len(input.Password) < 6 {
			return nil, validationError("password must be at least 6 characters")
		}
		if vendor.Password, err = hashPassword(input.Password); err != nil {
			return nil, err
		}
	}

	vendor.UpdatedAt = s.now()
	if err := s.users.Update(ctx, vendor); err != nil {
		if errors.Is(err, repositories.ErrIdentityConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return vendor, nil
}

// DeleteVendor deletes a vendor account
func (s *VendorService) DeleteVendor(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetVendor(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func parseUserStatus(status string) (string, error) {
	switch s := strings.ToLower(strings.TrimSpace(status)); s {
	case "":
		return models.UserStatusActive, nil
	case models.UserStatusActive, models.UserStatusInactive:
		return s, nil
	default:
		return "", validationError("unknown status %q", status)
	}
}
