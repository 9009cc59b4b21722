package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/middleware"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthManager is the account surface the auth handler needs
type AuthManager interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error)
	VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) (*models.LoginResult, error)
	ResendVerification(ctx context.Context, email string) error
	CurrentUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// AuthHandler handles authentication related HTTP requests
type AuthHandler struct {
	auth         AuthManager
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. tokenTTL sets the cookie lifetime.
func NewAuthHandler(auth AuthManager, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setTokenCookie(c, result.Token)
	respondSuccess(c, http.StatusCreated, "Registration successful, check your email for the verification code", result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.RequiresVerification {
		respondSuccess(c, http.StatusOK, "Email not verified, a new verification code has been sent", result)
		return
	}
	h.setTokenCookie(c, result.Token)
	respondSuccess(c, http.StatusOK, "Login successful", result)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	respondMessage(c, http.StatusOK, "Logged out")
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", user)
}

// VerifyEmail handles POST /auth/verify-email
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req models.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.auth.VerifyEmail(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setTokenCookie(c, result.Token)
	respondSuccess(c, http.StatusOK, "Email verified", result)
}

// ResendVerification handles POST /auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req models.ResendVerificationRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.auth.ResendVerification(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Verification code sent")
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	if token == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", h.secureCookie, true)
}
