package handlers

import (
	"context"
	"net/http"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignManager is the campaign surface the handler needs
type CampaignManager interface {
	ListCampaigns(ctx context.Context, vendorID primitive.ObjectID, page, limit int) ([]*models.Campaign, int64, error)
	GetCampaign(ctx context.Context, vendorID, id primitive.ObjectID) (*models.Campaign, error)
	CreateCampaign(ctx context.Context, vendorID primitive.ObjectID, input models.CampaignInput) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, vendorID, id primitive.ObjectID, input models.CampaignInput) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, vendorID, id primitive.ObjectID) error
}

// CampaignHandler handles vendor campaign requests
type CampaignHandler struct {
	campaigns CampaignManager
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaigns CampaignManager) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// ListCampaigns handles GET /campaigns
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	campaigns, total, err := h.campaigns.ListCampaigns(c.Request.Context(), vendorID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, campaigns, page, limit, total)
}

// GetCampaign handles GET /campaigns/:id
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	campaign, err := h.campaigns.GetCampaign(c.Request.Context(), vendorID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", campaign)
}

// CreateCampaign handles POST /campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	var input models.CampaignInput
	if !bindJSON(c, &input) {
		return
	}
	campaign, err := h.campaigns.CreateCampaign(c.Request.Context(), vendorID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Campaign created", campaign)
}

// UpdateCampaign handles PUT /campaigns/:id
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input models.CampaignInput
	if !bindJSON(c, &input) {
		return
	}
	campaign, err := h.campaigns.UpdateCampaign(c.Request.Context(), vendorID, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Campaign updated", campaign)
}

// DeleteCampaign handles DELETE /campaigns/:id
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.campaigns.DeleteCampaign(c.Request.Context(), vendorID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Campaign deleted")
}
