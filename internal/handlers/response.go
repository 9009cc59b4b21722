package handlers

import (
	"errors"
	"net/http"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/middleware"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/services"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/utils"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/whatsapp"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Pagination accompanies list responses
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type listData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, items any, page, limit int, total int64) {
	respondSuccess(c, http.StatusOK, "", listData{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: utils.TotalPages(total, limit),
		},
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: status < http.StatusBadRequest, Message: message})
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is logged by the access logger through c.Error and answered with 500.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "Internal server error"
	}
	c.JSON(status, Response{Success: false, Message: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, whatsapp.ErrEncoding),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrCredentialMissing):
		return http.StatusPreconditionFailed
	case errors.Is(err, repositories.ErrIdentityConflict),
		errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountInactive):
		return http.StatusForbidden
	case errors.Is(err, whatsapp.ErrRemoteRejected):
		return http.StatusBadGateway
	case errors.Is(err, whatsapp.ErrTransport):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// paramID parses the :id path parameter, answering 400 when it is malformed
func paramID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentUser returns the authenticated user's id, answering 401 when absent
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Authentication required")
		return primitive.NilObjectID, false
	}
	return id, true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
