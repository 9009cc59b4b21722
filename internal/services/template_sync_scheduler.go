package services

import (
	"context"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.uber.org/zap"
)

// TemplateSyncScheduler periodically syncs the template catalog of every
// active business connection.
type TemplateSyncScheduler struct {
	businesses repositories.BusinessRepository
	templates  *TemplateService
	interval   time.Duration
	logger     *zap.Logger
}

// NewTemplateSyncScheduler creates a new TemplateSyncScheduler
func NewTemplateSyncScheduler(businesses repositories.BusinessRepository, templates *TemplateService, interval time.Duration, logger *zap.Logger) *TemplateSyncScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateSyncScheduler{
		businesses: businesses,
		templates:  templates,
		interval:   interval,
		logger:     logger,
	}
}

// Run syncs every interval until ctx is cancelled
func (s *TemplateSyncScheduler) Run(ctx context.Context) {
	s.logger.Info("template sync scheduler started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("template sync scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce syncs each active tenant in turn and returns how many succeeded.
// One tenant's failure does not stop the others.
func (s *TemplateSyncScheduler) RunOnce(ctx context.Context) int {
	businesses, err := s.businesses.FindActive(ctx)
	if err != nil {
		s.logger.Error("listing active businesses failed", zap.Error(err))
		return 0
	}

	synced := 0
	for _, b := range businesses {
		if ctx.Err() != nil {
			break
		}
		if _, err := s.templates.sync(ctx, b.UserID, "scheduled"); err != nil {
			s.logger.Warn("scheduled template sync failed",
				zap.String("userId", b.UserID.Hex()),
				zap.String("wabaId", b.WabaID),
				zap.Error(err))
			continue
		}
		synced++
	}
	return synced
}
