package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/metrics"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/whatsapp"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SyncScope carries the tenant fields stamped onto templates discovered by sync
type SyncScope struct {
	UserID     primitive.ObjectID
	WabaID     string
	BusinessID string
}

// SyncFailure describes one remote template that could not be reconciled
type SyncFailure struct {
	Name       string `json:"name"`
	ExternalID string `json:"externalId"`
	Reason     string `json:"reason"`
}

// SyncResult is the outcome of reconciling one remote batch
type SyncResult struct {
	Reconciled  []*models.Template `json:"reconciled"`
	FailedCount int                `json:"failedCount"`
	Failures    []SyncFailure      `json:"failures"`
}

// Reconciler merges remote templates into local storage
type Reconciler struct {
	templates repositories.TemplateRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewReconciler creates a new Reconciler
func NewReconciler(templates repositories.TemplateRepository, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{templates: templates, logger: logger, now: time.Now}
}

// Reconcile upserts every template of batch. A template that fails is
// logged and counted; it never aborts the batch. Local templates absent from
// batch are left alone.
func (r *Reconciler) Reconcile(ctx context.Context, scope SyncScope, batch []whatsapp.RemoteTemplate) *SyncResult {
	result := &SyncResult{
		Reconciled: make([]*models.Template, 0, len(batch)),
		Failures:   []SyncFailure{},
	}

	for _, remote := range batch {
		template, created, err := r.reconcileOne(ctx, scope, remote)
		if err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, SyncFailure{
				Name:       remote.Name,
				ExternalID: remote.ID,
				Reason:     err.Error(),
			})
			metrics.TemplatesReconciledTotal.WithLabelValues("failed").Inc()
			r.logger.Warn("template reconciliation failed",
				zap.String("userId", scope.UserID.Hex()),
				zap.String("name", remote.Name),
				zap.String("templateId", remote.ID),
				zap.Error(err))
			continue
		}

		outcome := "updated"
		if created {
			outcome = "created"
		}
		metrics.TemplatesReconciledTotal.WithLabelValues(outcome).Inc()
		result.Reconciled = append(result.Reconciled, template)
	}

	return result
}

func (r *Reconciler) reconcileOne(ctx context.Context, scope SyncScope, remote whatsapp.RemoteTemplate) (*models.Template, bool, error) {
	if remote.Name == "" {
		return nil, false, fmt.Errorf("%w: remote template has no name", whatsapp.ErrDecoding)
	}
	content, err := whatsapp.Decode(remote.Components)
	if err != nil {
		return nil, false, err
	}
	status, err := models.ParseTemplateStatus(remote.Status)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", whatsapp.ErrDecoding, err)
	}
	category, err := models.ParseTemplateCategory(remote.Category)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", whatsapp.ErrDecoding, err)
	}
	quality := models.QualityNA
	if remote.QualityScore != nil {
		quality = models.ParseQualityRating(remote.QualityScore.Score)
	}

	existing, err := r.resolve(ctx, scope, remote)
	if err != nil {
		return nil, false, err
	}

	now := r.now()
	template := existing
	created := template == nil
	if created {
		template = &models.Template{
			UserID:     scope.UserID,
			WabaID:     scope.WabaID,
			BusinessID: scope.BusinessID,
			CreatedAt:  now,
		}
	}

	template.Name = remote.Name
	template.Category = category
	template.Language = remote.Language
	template.SetContent(content)
	template.Status = status
	template.QualityRating = quality
	template.RejectedReason = rejectedReason(status, remote.RejectedReason)
	if remote.ID != "" {
		template.ExternalTemplateID = remote.ID
	}
	template.UpdatedAt = now
	stampLifecycle(template, now)

	if created {
		err = r.templates.Create(ctx, template)
	} else {
		err = r.templates.Update(ctx, template)
	}
	if err != nil {
		return nil, false, err
	}
	return template, created, nil
}

// resolve finds the local record for remote, by platform id first and by
// (account, name) second. When both lookups hit different records the id
// match wins and the ambiguity is logged.
func (r *Reconciler) resolve(ctx context.Context, scope SyncScope, remote whatsapp.RemoteTemplate) (*models.Template, error) {
	var byID *models.Template
	if remote.ID != "" {
		found, err := r.templates.FindByExternalID(ctx, scope.UserID, remote.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		byID = found
	}

	byName, err := r.templates.FindByName(ctx, scope.UserID, scope.WabaID, remote.Name)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if byID == nil {
		return byName, nil
	}
	if byName != nil && byName.ID != byID.ID {
		r.logger.Warn("template identity ambiguous, preferring platform id match",
			zap.String("userId", scope.UserID.Hex()),
			zap.String("templateId", remote.ID),
			zap.String("name", remote.Name),
			zap.String("idMatch", byID.ID.Hex()),
			zap.String("nameMatch", byName.ID.Hex()))
	}
	return byID, nil
}

func rejectedReason(status models.TemplateStatus, reason string) string {
	if status != models.StatusRejected || reason == "NONE" {
		return ""
	}
	return reason
}
