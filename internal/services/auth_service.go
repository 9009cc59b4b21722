package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/utils"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/jwt"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/mailer"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const verificationCodeTTL = time.Hour

// passwordCost is lowered by tests
var passwordCost = bcrypt.DefaultCost

// AuthService handles registration, login and email verification
type AuthService struct {
	users    repositories.UserRepository
	tokens   *jwt.TokenService
	mail     mailer.Mailer
	mailFrom string
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository, tokens *jwt.TokenService, mail mailer.Mailer, mailFrom string, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		mail:     mail,
		mailFrom: mailFrom,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates an unverified vendor account, mails it a verification
// code and signs it in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, validationError("first name, last name and email are required")
	}
	if len(req.Password) < 6 {
		return nil, validationError("password must be at least 6 characters")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	code, err := utils.GenerateVerificationCode(6)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expires := now.Add(verificationCodeTTL)
	user := &models.User{
		FirstName:               strings.TrimSpace(req.FirstName),
		LastName:                strings.TrimSpace(req.LastName),
		Email:                   email,
		Password:                hash,
		WhatsappNumber:          req.WhatsappNumber,
		WhatsappCountryCode:     req.WhatsappCountryCode,
		BusinessName:            req.BusinessName,
		BusinessCountry:         req.BusinessCountry,
		BusinessWebsite:         req.BusinessWebsite,
		UseCase:                 req.UseCase,
		ContactSize:             req.ContactSize,
		MonthlyBudget:           req.MonthlyBudget,
		BusinessCategory:        req.BusinessCategory,
		CompanySize:             req.CompanySize,
		RoleInCompany:           req.RoleInCompany,
		ReferralSource:          req.ReferralSource,
		Role:                    models.RoleVendor,
		Status:                  models.UserStatusActive,
		VerificationCode:        code,
		VerificationCodeExpires: &expires,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrIdentityConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.sendCode(ctx, user, code, mailer.WelcomeEmail)

	token, err := s.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{Token: token, User: user}, nil
}

// Login checks the password and issues a token. Unverified accounts get a
// fresh verification code instead of a token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrAccountInactive
	}

	now := s.now()
	if !user.IsEmailVerified {
		code, err := s.issueCode(ctx, user, now)
		if err != nil {
			return nil, err
		}
		s.sendCode(ctx, user, code, mailer.VerificationEmail)
		return &models.LoginResult{User: user, RequiresVerification: true}, nil
	}

	user.LastLogin = &now
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{Token: token, User: user}, nil
}

// VerifyEmail marks the account verified when code matches and has not expired
func (s *AuthService) VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) (*models.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	if user.VerificationCode == "" || user.VerificationCode != strings.TrimSpace(req.Code) ||
		user.VerificationCodeExpires == nil || !user.VerificationCodeExpires.After(now) {
		return nil, ErrInvalidCode
	}

	user.IsEmailVerified = true
	user.VerificationCode = ""
	user.VerificationCodeExpires = nil
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{Token: token, User: user}, nil
}

// ResendVerification mails a new code to an unverified account
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return validationError("email is already verified")
	}
	code, err := s.issueCode(ctx, user, s.now())
	if err != nil {
		return err
	}
	s.sendCode(ctx, user, code, mailer.VerificationEmail)
	return nil
}

// CurrentUser returns the signed-in user
func (s *AuthService) CurrentUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Authenticate resolves a bearer token to an active user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, jwt.ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, ErrAccountInactive
	}
	return user, nil
}

func (s *AuthService) issueCode(ctx context.Context, user *models.User, now time.Time) (string, error) {
	code, err := utils.GenerateVerificationCode(6)
	if err != nil {
		return "", err
	}
	expires := now.Add(verificationCodeTTL)
	user.VerificationCode = code
	user.VerificationCodeExpires = &expires
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	return code, nil
}

// sendCode mails code to user; delivery failures are logged, never returned
func (s *AuthService) sendCode(ctx context.Context, user *models.User, code string, build func(from, to, name, code string) (mailer.Email, error)) {
	email, err := build(s.mailFrom, user.Email, user.FirstName, code)
	if err == nil {
		err = s.mail.Send(ctx, email)
	}
	if err != nil {
		s.logger.Warn("verification email not sent", zap.String("userId", user.ID.Hex()), zap.Error(err))
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
