package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/whatsapp"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Embedded signup actions accepted by HandleAction
const (
	ActionExchangeToken  = "exchange_token"
	ActionSignupCallback = "signup_callback"
	ActionGetPermissions = "get_permissions"
)

// OnboardingPlatform is the subset of the Graph API client used during embedded signup
type OnboardingPlatform interface {
	ExchangeCode(ctx context.Context, code string) (*whatsapp.AccessToken, error)
	InspectToken(ctx context.Context, inputToken string) (*whatsapp.TokenInfo, error)
	PermissionDialogURL(redirectURL, state string) string
}

// BusinessService links vendors to their WhatsApp Business Accounts
type BusinessService struct {
	businesses  repositories.BusinessRepository
	platform    OnboardingPlatform
	redirectURL string
	logger      *zap.Logger
	now         func() time.Time
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(businesses repositories.BusinessRepository, platform OnboardingPlatform, redirectURL string, logger *zap.Logger) *BusinessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BusinessService{
		businesses:  businesses,
		platform:    platform,
		redirectURL: redirectURL,
		logger:      logger,
		now:         time.Now,
	}
}

// GetBusiness returns the user's connection
func (s *BusinessService) GetBusiness(ctx context.Context, userID primitive.ObjectID) (*models.Business, error) {
	return s.businesses.FindByUserID(ctx, userID)
}

// HandleAction dispatches one embedded signup step
func (s *BusinessService) HandleAction(ctx context.Context, userID primitive.ObjectID, req models.FacebookActionRequest) (any, error) {
	switch req.Action {
	case ActionExchangeToken:
		if req.Code == "" {
			return nil, validationError("code is required")
		}
		return s.ExchangeToken(ctx, userID, req.Code)
	case ActionSignupCallback:
		if req.WabaData == nil {
			return nil, validationError("wabaData is required")
		}
		return s.CompleteSignup(ctx, userID, *req.WabaData)
	case ActionGetPermissions:
		return s.CheckPermissions(ctx, userID)
	default:
		return nil, validationError("unknown action %q", req.Action)
	}
}

// ExchangeToken trades an authorization code for an access token and stores it
func (s *BusinessService) ExchangeToken(ctx context.Context, userID primitive.ObjectID, code string) (*models.Business, error) {
	token, err := s.platform.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	business, err := s.findOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	business.AccessToken = token.AccessToken
	business.AccessTokenExpiresAt = nil
	if token.ExpiresIn > 0 {
		expires := s.now().Add(time.Duration(token.ExpiresIn) * time.Second)
		business.AccessTokenExpiresAt = &expires
	}
	if business.Status == "" {
		business.Status = models.BusinessStatusPending
	}

	if err := s.businesses.Save(ctx, business); err != nil {
		return nil, err
	}
	s.logger.Info("business access token stored", zap.String("userId", userID.Hex()))
	return business, nil
}

// CompleteSignup records the account ids returned by the signup flow and activates the connection
func (s *BusinessService) CompleteSignup(ctx context.Context, userID primitive.ObjectID, data models.SignupData) (*models.Business, error) {
	if strings.TrimSpace(data.WabaID) == "" {
		return nil, validationError("waba_id is required")
	}

	business, err := s.findOrNew(ctx, userID)
	if err != nil {
		return nil, err
	}
	business.WabaID = data.WabaID
	business.PhoneNumberID = data.PhoneNumberID
	business.BusinessID = data.BusinessID
	business.Status = models.BusinessStatusActive
	business.SignupCompleted = true

	if err := s.businesses.Save(ctx, business); err != nil {
		return nil, err
	}
	s.logger.Info("business signup completed",
		zap.String("userId", userID.Hex()),
		zap.String("wabaId", data.WabaID))
	return business, nil
}

// CheckPermissions compares the stored token's scopes with the scopes
// template management needs, and records the outcome.
func (s *BusinessService) CheckPermissions(ctx context.Context, userID primitive.ObjectID) (*models.PermissionReport, error) {
	business, err := s.businesses.FindByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCredentialMissing
	}
	if err != nil {
		return nil, err
	}
	if business.AccessToken == "" {
		return nil, ErrCredentialMissing
	}

	info, err := s.platform.InspectToken(ctx, business.AccessToken)
	if err != nil {
		return nil, err
	}

	granted := make(map[string]bool, len(info.Scopes))
	for _, scope := range info.Scopes {
		granted[scope] = true
	}
	report := &models.PermissionReport{
		CurrentPermissions:  append([]string{}, info.Scopes...),
		MissingPermissions:  []string{},
		RequiredPermissions: append([]string{}, whatsapp.RequiredPermissions...),
	}
	for _, required := range whatsapp.RequiredPermissions {
		if !granted[required] {
			report.MissingPermissions = append(report.MissingPermissions, required)
		}
	}
	sort.Strings(report.CurrentPermissions)
	report.HasAllPermissions = len(report.MissingPermissions) == 0

	business.TokenPermissions = report.CurrentPermissions
	business.PermissionsGranted = report.HasAllPermissions
	if err := s.businesses.Save(ctx, business); err != nil {
		return nil, err
	}
	return report, nil
}

// PermissionRequestURL returns the dialog URL asking userID for the required scopes
func (s *BusinessService) PermissionRequestURL(userID primitive.ObjectID) string {
	return s.platform.PermissionDialogURL(s.redirectURL, userID.Hex())
}

func (s *BusinessService) findOrNew(ctx context.Context, userID primitive.ObjectID) (*models.Business, error) {
	business, err := s.businesses.FindByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.Business{UserID: userID}, nil
	}
	return business, err
}
