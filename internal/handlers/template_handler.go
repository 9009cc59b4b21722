package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/services"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateManager is the template surface the handler needs
type TemplateManager interface {
	ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, int64, error)
	GetTemplate(ctx context.Context, userID, id primitive.ObjectID) (*models.Template, error)
	CreateTemplate(ctx context.Context, userID primitive.ObjectID, input models.TemplateInput) (*models.Template, error)
	UpdateTemplate(ctx context.Context, userID, id primitive.ObjectID, input models.TemplateInput) (*models.Template, error)
	DeleteTemplate(ctx context.Context, userID, id primitive.ObjectID) error
	SubmitTemplate(ctx context.Context, userID, id primitive.ObjectID) (*models.Template, error)
	SyncFromRemote(ctx context.Context, userID primitive.ObjectID) (*services.SyncResult, error)
	GetAnalytics(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*models.TemplateAnalytics, error)
}

// TemplateHandler handles WhatsApp template requests for the signed-in vendor
type TemplateHandler struct {
	templates TemplateManager
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templates TemplateManager) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// ListTemplates handles GET /templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))

	filter := models.TemplateFilter{
		UserID:   userID,
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
		SortDesc: c.DefaultQuery("sortOrder", "desc") != "asc",
		Page:     page,
		Limit:    limit,
	}
	if s := c.Query("status"); s != "" {
		status, err := models.ParseTemplateStatus(s)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.Status = status
	}
	if s := c.Query("category"); s != "" {
		category, err := models.ParseTemplateCategory(s)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.Category = category
	}

	templates, total, err := h.templates.ListTemplates(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, templates, page, limit, total)
}

// GetTemplate handles GET /templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	template, err := h.templates.GetTemplate(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", template)
}

// CreateTemplate handles POST /templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var input models.TemplateInput
	if !bindJSON(c, &input) {
		return
	}
	template, err := h.templates.CreateTemplate(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Template created", template)
}

// UpdateTemplate handles PUT /templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input models.TemplateInput
	if !bindJSON(c, &input) {
		return
	}
	template, err := h.templates.UpdateTemplate(c.Request.Context(), userID, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Template updated", template)
}

// DeleteTemplate handles DELETE /templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.templates.DeleteTemplate(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Template deleted")
}

// SubmitTemplate handles POST /templates/:id/submit
func (h *TemplateHandler) SubmitTemplate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	template, err := h.templates.SubmitTemplate(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Template submitted for review", template)
}

// SyncTemplates handles POST /templates/sync
func (h *TemplateHandler) SyncTemplates(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	result, err := h.templates.SyncFromRemote(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Templates synchronized", result)
}

// GetAnalytics handles GET /templates/analytics?from=2024-01-01&to=2024-02-01
func (h *TemplateHandler) GetAnalytics(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	from, err := parseDate(c.Query("from"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	analytics, err := h.templates.GetAnalytics(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", analytics)
}

// parseDate accepts YYYY-MM-DD or RFC 3339; empty means unbounded
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
