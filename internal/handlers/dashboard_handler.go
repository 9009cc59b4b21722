package handlers

import (
	"context"
	"net/http"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardReporter builds the dashboard summaries
type DashboardReporter interface {
	AdminDashboard(ctx context.Context) (*models.AdminDashboard, error)
	VendorDashboard(ctx context.Context, vendorID primitive.ObjectID) (*models.VendorDashboard, error)
}

// DashboardHandler serves the admin and vendor dashboards
type DashboardHandler struct {
	dashboards DashboardReporter
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboards DashboardReporter) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// AdminDashboard handles GET /admin/dashboard
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	dashboard, err := h.dashboards.AdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", dashboard)
}

// VendorDashboard handles GET /vendor/dashboard
func (h *DashboardHandler) VendorDashboard(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboards.VendorDashboard(c.Request.Context(), vendorID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", dashboard)
}
