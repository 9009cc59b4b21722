package handlers

import (
	"context"
	"net/http"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanManager is the subscription plan surface the handler needs
type PlanManager interface {
	ListPlans(ctx context.Context, activeOnly bool) ([]*models.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error)
	CreatePlan(ctx context.Context, plan *models.SubscriptionPlan) (*models.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, id primitive.ObjectID, input *models.SubscriptionPlan) (*models.SubscriptionPlan, error)
	DeletePlan(ctx context.Context, id primitive.ObjectID) error
}

// PlanHandler handles subscription plan requests
type PlanHandler struct {
	plans PlanManager
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(plans PlanManager) *PlanHandler {
	return &PlanHandler{plans: plans}
}

// ListActivePlans handles GET /plans for the pricing page
func (h *PlanHandler) ListActivePlans(c *gin.Context) {
	h.list(c, true)
}

// ListPlans handles GET /admin/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	h.list(c, false)
}

func (h *PlanHandler) list(c *gin.Context, activeOnly bool) {
	plans, err := h.plans.ListPlans(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", plans)
}

// GetPlan handles GET /admin/plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	plan, err := h.plans.GetPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", plan)
}

// CreatePlan handles POST /admin/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var plan models.SubscriptionPlan
	if !bindJSON(c, &plan) {
		return
	}
	created, err := h.plans.CreatePlan(c.Request.Context(), &plan)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Plan created", created)
}

// UpdatePlan handles PUT /admin/plans/:id
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input models.SubscriptionPlan
	if !bindJSON(c, &input) {
		return
	}
	updated, err := h.plans.UpdatePlan(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Plan updated", updated)
}

// DeletePlan handles DELETE /admin/plans/:id
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.plans.DeletePlan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Plan deleted")
}
