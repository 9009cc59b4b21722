package services

import (
	"context"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/cache"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ValueCipher seals configuration values at rest
type ValueCipher interface {
	Encrypt(plain string) (string, error)
	Decrypt(sealed string) (string, error)
}

// ConfigService manages encrypted system configuration
type ConfigService struct {
	configs repositories.SystemConfigRepository
	cipher  ValueCipher
	cache   cache.ConfigCache
	logger  *zap.Logger
	now     func() time.Time
}

// NewConfigService creates a new ConfigService; a nil cache disables caching
func NewConfigService(configs repositories.SystemConfigRepository, cipher ValueCipher, configCache cache.ConfigCache, logger *zap.Logger) *ConfigService {
	if configCache == nil {
		configCache = cache.NopConfigCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigService{configs: configs, cipher: cipher, cache: configCache, logger: logger, now: time.Now}
}

// ListConfigs returns every entry with its value decrypted
func (s *ConfigService) ListConfigs(ctx context.Context) ([]*models.SystemConfig, error) {
	configs, err := s.configs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.SystemConfig, 0, len(configs))
	for _, c := range configs {
		out = append(out, s.decrypted(c))
	}
	return out, nil
}

// GetConfig returns one entry by key with its value decrypted
func (s *ConfigService) GetConfig(ctx context.Context, key string) (*models.SystemConfig, error) {
	config, err := s.configs.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.decrypted(config), nil
}

// UpsertConfig encrypts input.Value and stores it under input.Key
func (s *ConfigService) UpsertConfig(ctx context.Context, input models.SystemConfigInput) (*models.SystemConfig, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, validationError("key is required")
	}
	category := strings.ToLower(strings.TrimSpace(input.Category))
	switch category {
	case "":
		category = models.ConfigGeneral
	case models.ConfigGeneral, models.ConfigSocial, models.ConfigEmail, models.ConfigJWT, models.ConfigDatabase:
	default:
		return nil, validationError("unknown category %q", input.Category)
	}

	sealed, err := s.cipher.Encrypt(input.Value)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stored, err := s.configs.UpsertByKey(ctx, &models.SystemConfig{
		Key:         key,
		Value:       sealed,
		Description: input.Description,
		Category:    category,
		IsPublic:    input.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	s.cache.InvalidatePublicConfigs(ctx)
	return s.decrypted(stored), nil
}

// DeleteConfig deletes an entry by id
func (s *ConfigService) DeleteConfig(ctx context.Context, id primitive.ObjectID) error {
	if err := s.configs.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidatePublicConfigs(ctx)
	return nil
}

// PublicConfigs returns the key to value map of entries flagged public
func (s *ConfigService) PublicConfigs(ctx context.Context) (map[string]string, error) {
	if cached, ok := s.cache.GetPublicConfigs(ctx); ok {
		return cached, nil
	}

	configs, err := s.configs.FindPublic(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(configs))
	for _, c := range configs {
		out[c.Key] = s.decrypted(c).Value
	}
	s.cache.SetPublicConfigs(ctx, out)
	return out, nil
}

// decrypted returns a copy of c carrying the plain value, or
// DecryptionErrorValue when the stored value cannot be opened.
func (s *ConfigService) decrypted(c *models.SystemConfig) *models.SystemConfig {
	out := *c
	plain, err := s.cipher.Decrypt(c.Value)
	if err != nil {
		s.logger.Warn("config value cannot be decrypted", zap.String("key", c.Key), zap.Error(err))
		out.Value = models.DecryptionErrorValue
		return &out
	}
	out.Value = plain
	return &out
}
