package handlers

import (
	"context"
	"net/http"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConfigManager is the system configuration surface the handler needs
type ConfigManager interface {
	ListConfigs(ctx context.Context) ([]*models.SystemConfig, error)
	GetConfig(ctx context.Context, key string) (*models.SystemConfig, error)
	UpsertConfig(ctx context.Context, input models.SystemConfigInput) (*models.SystemConfig, error)
	DeleteConfig(ctx context.Context, id primitive.ObjectID) error
	PublicConfigs(ctx context.Context) (map[string]string, error)
}

// ConfigHandler serves admin configuration and the public subset
type ConfigHandler struct {
	configs ConfigManager
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(configs ConfigManager) *ConfigHandler {
	return &ConfigHandler{configs: configs}
}

// ListConfigs handles GET /admin/configs
func (h *ConfigHandler) ListConfigs(c *gin.Context) {
	configs, err := h.configs.ListConfigs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", configs)
}

// GetConfig handles GET /admin/configs/:key
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	config, err := h.configs.GetConfig(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", config)
}

// UpsertConfig handles POST /admin/configs
func (h *ConfigHandler) UpsertConfig(c *gin.Context) {
	var input models.SystemConfigInput
	if !bindJSON(c, &input) {
		return
	}
	config, err := h.configs.UpsertConfig(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Config saved", config)
}

// DeleteConfig handles DELETE /admin/configs/:id
func (h *ConfigHandler) DeleteConfig(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.configs.DeleteConfig(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Config deleted")
}

// PublicConfigs handles GET /configs/public without authentication
func (h *ConfigHandler) PublicConfigs(c *gin.Context) {
	configs, err := h.configs.PublicConfigs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "", configs)
}
