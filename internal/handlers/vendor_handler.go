package handlers

import (
	"context"
	"net/http"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VendorManager is the admin vendor surface the handler needs
type VendorManager interface {
	ListVendors(ctx context.Context, filter models.UserFilter) ([]*models.User, int64, error)
	GetVendor(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	CreateVendor(ctx context.Context, input models.VendorInput) (*models.User, error)
	UpdateVendor(ctx context.Context, id primitive.ObjectID, input models.VendorInput) (*models.User, error)
	DeleteVendor(ctx context.Context, id primitive.ObjectID) error
}

// VendorHandler handles admin vendor management
type VendorHandler struct {
	vendors VendorManager
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendors VendorManager) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// ListVendors handles GET /admin/vendors
func (h *VendorHandler) ListVendors(c *gin.Context) {
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	vendors, total, err := h.vendors.ListVendors(c.Request.Context(), models.UserFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, vendors, page, limit, total)
}

// GetVendor handles GET /admin/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	vendor, err := h.vendors.GetVendor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", vendor)
}

// CreateVendor handles POST /admin/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var input models.VendorInput
	if !bindJSON(c, &input) {
		return
	}
	vendor, err := h.vendors.CreateVendor(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Vendor created", vendor)
}

// UpdateVendor handles PUT /admin/vendors/:id
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input models.VendorInput
	if !bindJSON(c, &input) {
		return
	}
	vendor, err := h.vendors.UpdateVendor(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Vendor updated", vendor)
}

// DeleteVendor handles DELETE /admin/vendors/:id
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.vendors.DeleteVendor(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Vendor deleted")
}
