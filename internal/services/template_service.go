package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/metrics"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/whatsapp"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TemplatePlatform is the subset of the Graph API client the template service needs
type TemplatePlatform interface {
	Submit(ctx context.Context, t *models.Template, creds whatsapp.Credentials) (string, error)
	Remove(ctx context.Context, name string, creds whatsapp.Credentials) error
	ListAll(ctx context.Context, creds whatsapp.Credentials, pageSize int) ([]whatsapp.RemoteTemplate, error)
}

var templateNamePattern = regexp.MustCompile(`^[a-z0-9_]{1,512}$`)

// TemplateService handles template management and synchronization with the platform
type TemplateService struct {
	templates   repositories.TemplateRepository
	credentials CredentialResolver
	platform    TemplatePlatform
	reconciler  *Reconciler
	pageSize    int
	logger      *zap.Logger
	now         func() time.Time
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(
	templates repositories.TemplateRepository,
	credentials CredentialResolver,
	platform TemplatePlatform,
	pageSize int,
	logger *zap.Logger,
) *TemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{
		templates:   templates,
		credentials: credentials,
		platform:    platform,
		reconciler:  NewReconciler(templates, logger),
		pageSize:    pageSize,
		logger:      logger,
		now:         time.Now,
	}
}

// setClock replaces the time source of the service and its reconciler
func (s *TemplateService) setClock(now func() time.Time) {
	s.now = now
	s.reconciler.now = now
}

// ListTemplates returns a page of the user's templates and the total match count
func (s *TemplateService) ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]*models.Template, int64, error) {
	return s.templates.FindAll(ctx, filter)
}

// GetTemplate returns one of the user's templates
func (s *TemplateService) GetTemplate(ctx context.Context, userID, id primitive.ObjectID) (*models.Template, error) {
	return s.templates.FindByID(ctx, userID, id)
}

// CreateTemplate stores a new DRAFT template bound to the user's business account
func (s *TemplateService) CreateTemplate(ctx context.Context, userID primitive.ObjectID, input models.TemplateInput) (*models.Template, error) {
	template := &models.Template{UserID: userID, Status: models.StatusDraft, QualityRating: models.QualityNA}
	if err := applyTemplateInput(template, input); err != nil {
		return nil, err
	}

	creds, err := s.credentials.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	template.WabaID = creds.AccountID
	template.BusinessID = creds.BusinessID

	now := s.now()
	template.CreatedAt = now
	template.UpdatedAt = now
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// UpdateTemplate edits a DRAFT template. Status is left alone; only submit
// and sync move a template out of DRAFT.
func (s *TemplateService) UpdateTemplate(ctx context.Context, userID, id primitive.ObjectID, input models.TemplateInput) (*models.Template, error) {
	template, err := s.templates.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := checkEditable(template); err != nil {
		return nil, err
	}
	if err := applyTemplateInput(template, input); err != nil {
		return nil, err
	}
	template.UpdatedAt = s.now()
	if err := s.templates.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// DeleteTemplate deletes the template locally. APPROVED templates are also
// removed from the platform; a failed remote removal is logged and ignored.
func (s *TemplateService) DeleteTemplate(ctx context.Context, userID, id primitive.ObjectID) error {
	template, err := s.templates.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if template.Status == models.StatusApproved && template.ExternalTemplateID != "" {
		s.removeRemote(ctx, template)
	}

	return s.templates.Delete(ctx, userID, id)
}

func (s *TemplateService) removeRemote(ctx context.Context, template *models.Template) {
	logger := s.logger.With(
		zap.String("userId", template.UserID.Hex()),
		zap.String("name", template.Name),
		zap.String("templateId", template.ExternalTemplateID))

	creds, err := s.credentials.Resolve(ctx, template.UserID)
	if err != nil {
		logger.Warn("skipping platform delete", zap.Error(err))
		return
	}
	err = s.platform.Remove(ctx, template.Name, creds)
	switch {
	case err == nil:
	case whatsapp.IsNotFound(err):
		logger.Info("template already gone from platform")
	default:
		logger.Warn("platform delete failed, deleting locally anyway", zap.Error(err))
	}
}

// SubmitTemplate submits a DRAFT template for review and marks it PENDING
func (s *TemplateService) SubmitTemplate(ctx context.Context, userID, id primitive.ObjectID) (*models.Template, error) {
	template, err := s.templates.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := checkSubmittable(template); err != nil {
		return nil, err
	}

	creds, err := s.credentials.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	externalID, err := s.platform.Submit(ctx, template, creds)
	if err != nil {
		return nil, err
	}

	if err := markSubmitted(template, externalID, s.now()); err != nil {
		return nil, err
	}
	if err := s.templates.Update(ctx, template); err != nil {
		s.logger.Error("template submitted but local update failed",
			zap.String("templateId", externalID),
			zap.String("name", template.Name),
			zap.Error(err))
		return nil, err
	}
	return template, nil
}

// SyncFromRemote pulls the user's template catalog from the platform and
// reconciles it into local storage.
func (s *TemplateService) SyncFromRemote(ctx context.Context, userID primitive.ObjectID) (*SyncResult, error) {
	return s.sync(ctx, userID, "request")
}

func (s *TemplateService) sync(ctx context.Context, userID primitive.ObjectID, trigger string) (*SyncResult, error) {
	creds, err := s.credentials.Resolve(ctx, userID)
	if err != nil {
		metrics.TemplateSyncRunsTotal.WithLabelValues(trigger, "aborted").Inc()
		return nil, err
	}

	remote, err := s.platform.ListAll(ctx, creds, s.pageSize)
	if err != nil {
		metrics.TemplateSyncRunsTotal.WithLabelValues(trigger, "aborted").Inc()
		return nil, err
	}

	scope := SyncScope{UserID: userID, WabaID: creds.AccountID, BusinessID: creds.BusinessID}
	result := s.reconciler.Reconcile(ctx, scope, remote)

	status := "ok"
	if result.FailedCount > 0 {
		status = "partial"
	}
	metrics.TemplateSyncRunsTotal.WithLabelValues(trigger, status).Inc()
	s.logger.Info("template sync finished",
		zap.String("userId", userID.Hex()),
		zap.String("trigger", trigger),
		zap.Int("fetched", len(remote)),
		zap.Int("reconciled", len(result.Reconciled)),
		zap.Int("failed", result.FailedCount))
	return result, nil
}

// GetAnalytics counts the user's templates by status and category, optionally
// restricted to templates created in [from, to].
func (s *TemplateService) GetAnalytics(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*models.TemplateAnalytics, error) {
	byStatus, err := s.templates.CountBy(ctx, userID, "status", from, to)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.templates.CountBy(ctx, userID, "category", from, to)
	if err != nil {
		return nil, err
	}

	analytics := &models.TemplateAnalytics{
		ByStatus:   make(map[string]int64, len(byStatus)),
		ByCategory: make(map[string]int64, len(byCategory)),
	}
	for _, g := range byStatus {
		analytics.ByStatus[g.Key] = g.Count
		analytics.Total += g.Count
	}
	for _, g := range byCategory {
		analytics.ByCategory[g.Key] = g.Count
	}
	return analytics, nil
}

func applyTemplateInput(t *models.Template, input models.TemplateInput) error {
	name := strings.TrimSpace(input.Name)
	if !templateNamePattern.MatchString(name) {
		return validationError("name must be lowercase letters, digits and underscores")
	}
	category, err := models.ParseTemplateCategory(input.Category)
	if err != nil {
		return validationError("%v", err)
	}
	language := strings.TrimSpace(input.Language)
	if language == "" {
		return validationError("language is required")
	}
	if strings.TrimSpace(input.Body.Text) == "" {
		return validationError("body text is required")
	}

	header := models.NoHeader()
	if input.Header != nil {
		header = *input.Header
		if header.Type == "" {
			header.Type = models.HeaderNone
		}
		header.Type = models.HeaderType(strings.ToUpper(string(header.Type)))
	}
	if err := header.Validate(); err != nil {
		return validationError("%v", err)
	}
	for i, b := range input.Buttons {
		b.Type = models.ButtonType(strings.ToUpper(string(b.Type)))
		input.Buttons[i] = b
		if err := b.Validate(); err != nil {
			return validationError("button %d: %v", i, err)
		}
	}

	t.Name = name
	t.Category = category
	t.Language = language
	t.SetContent(models.TemplateContent{
		Header:  header,
		Body:    input.Body,
		Footer:  input.Footer,
		Buttons: input.Buttons,
	})
	return nil
}

