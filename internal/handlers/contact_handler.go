package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxImportBytes = 10 << 20

// ContactManager is the address book surface the handler needs
type ContactManager interface {
	ListContacts(ctx context.Context, filter models.ContactFilter) ([]*models.Contact, int64, error)
	GetContact(ctx context.Context, vendorID, id primitive.ObjectID) (*models.Contact, error)
	CreateContact(ctx context.Context, vendorID primitive.ObjectID, contact *models.Contact) (*models.Contact, error)
	UpdateContact(ctx context.Context, vendorID, id primitive.ObjectID, input *models.Contact) (*models.Contact, error)
	DeleteContact(ctx context.Context, vendorID, id primitive.ObjectID) error
	BulkCreateContacts(ctx context.Context, vendorID primitive.ObjectID, contacts []*models.Contact) *models.BulkCreateResult
	BulkDeleteContacts(ctx context.Context, vendorID primitive.ObjectID, ids []string) *models.BulkDeleteResult
	ImportContactsCSV(ctx context.Context, vendorID primitive.ObjectID, r io.Reader) (*models.BulkCreateResult, error)
}

// ContactHandler handles vendor contact requests
type ContactHandler struct {
	contacts ContactManager
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contacts ContactManager) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type bulkCreateRequest struct {
	Contacts []*models.Contact `json:"contacts" binding:"required"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ListContacts handles GET /contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))
	contacts, total, err := h.contacts.ListContacts(c.Request.Context(), models.ContactFilter{
		VendorID: vendorID,
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, contacts, page, limit, total)
}

// GetContact handles GET /contacts/:id
func (h *ContactHandler) GetContact(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	contact, err := h.contacts.GetContact(c.Request.Context(), vendorID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", contact)
}

// CreateContact handles POST /contacts
func (h *ContactHandler) CreateContact(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	var contact models.Contact
	if !bindJSON(c, &contact) {
		return
	}
	created, err := h.contacts.CreateContact(c.Request.Context(), vendorID, &contact)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Contact created", created)
}

// UpdateContact handles PUT /contacts/:id
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input models.Contact
	if !bindJSON(c, &input) {
		return
	}
	updated, err := h.contacts.UpdateContact(c.Request.Context(), vendorID, id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Contact updated", updated)
}

// DeleteContact handles DELETE /contacts/:id
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.contacts.DeleteContact(c.Request.Context(), vendorID, id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Contact deleted")
}

// BulkCreateContacts handles POST /contacts/bulk
func (h *ContactHandler) BulkCreateContacts(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req bulkCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	result := h.contacts.BulkCreateContacts(c.Request.Context(), vendorID, req.Contacts)
	respondSuccess(c, http.StatusOK, "Bulk import finished", result)
}

// BulkDeleteContacts handles POST /contacts/bulk-delete
func (h *ContactHandler) BulkDeleteContacts(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	var req bulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	result := h.contacts.BulkDeleteContacts(c.Request.Context(), vendorID, req.IDs)
	respondSuccess(c, http.StatusOK, "Bulk delete finished", result)
}

// ImportContacts handles POST /contacts/import with a multipart "file" field
func (h *ContactHandler) ImportContacts(c *gin.Context) {
	vendorID, ok := currentUser(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "A CSV file is required in the \"file\" field")
		return
	}
	if header.Size > maxImportBytes {
		respondMessage(c, http.StatusRequestEntityTooLarge, "CSV file is too large")
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	result, err := h.contacts.ImportContactsCSV(c.Request.Context(), vendorID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Import finished", result)
}
