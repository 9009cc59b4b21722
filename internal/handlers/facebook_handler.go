package handlers

import (
	"context"
	"net/http"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessOnboarding is the embedded signup surface the handler needs
type BusinessOnboarding interface {
	GetBusiness(ctx context.Context, userID primitive.ObjectID) (*models.Business, error)
	HandleAction(ctx context.Context, userID primitive.ObjectID, req models.FacebookActionRequest) (any, error)
	PermissionRequestURL(userID primitive.ObjectID) string
}

// FacebookHandler connects vendors to their WhatsApp Business Accounts
type FacebookHandler struct {
	businesses BusinessOnboarding
}

// NewFacebookHandler creates a new FacebookHandler
func NewFacebookHandler(businesses BusinessOnboarding) *FacebookHandler {
	return &FacebookHandler{businesses: businesses}
}

// HandleAction handles POST /facebook
func (h *FacebookHandler) HandleAction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.FacebookActionRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.businesses.HandleAction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", result)
}

// GetBusiness handles GET /facebook/business
func (h *FacebookHandler) GetBusiness(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	business, err := h.businesses.GetBusiness(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", business)
}

// RequestPermissions handles GET /facebook/request-permissions
func (h *FacebookHandler) RequestPermissions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	respondSuccess(c, http.StatusOK, "", gin.H{"url": h.businesses.PermissionRequestURL(userID)})
}
