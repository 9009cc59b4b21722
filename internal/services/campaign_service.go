package services

import (
	"context"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignService manages vendor campaigns
type CampaignService struct {
	campaigns repositories.CampaignRepository
	templates repositories.TemplateRepository
	now       func() time.Time
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(campaigns repositories.CampaignRepository, templates repositories.TemplateRepository) *CampaignService {
	return &CampaignService{campaigns: campaigns, templates: templates, now: time.Now}
}

// ListCampaigns returns a page of the vendor's campaigns and the total count
func (s *CampaignService) ListCampaigns(ctx context.Context, vendorID primitive.ObjectID, page, limit int) ([]*models.Campaign, int64, error) {
	return s.campaigns.FindAll(ctx, vendorID, page, limit)
}

// GetCampaign returns one of the vendor's campaigns
func (s *CampaignService) GetCampaign(ctx context.Context, vendorID, id primitive.ObjectID) (*models.Campaign, error) {
	return s.campaigns.FindByID(ctx, vendorID, id)
}

// CreateCampaign stores a new campaign, draft unless input says otherwise
func (s *CampaignService) CreateCampaign(ctx context.Context, vendorID primitive.ObjectID, input models.CampaignInput) (*models.Campaign, error) {
	campaign := &models.Campaign{VendorID: vendorID}
	if err := s.apply(ctx, campaign, input); err != nil {
		return nil, err
	}
	now := s.now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// UpdateCampaign replaces the editable fields of a campaign
func (s *CampaignService) UpdateCampaign(ctx context.Context, vendorID, id primitive.ObjectID, input models.CampaignInput) (*models.Campaign, error) {
	campaign, err := s.campaigns.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, campaign, input); err != nil {
		return nil, err
	}
	campaign.UpdatedAt = s.now()
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// DeleteCampaign deletes one of the vendor's campaigns
func (s *CampaignService) DeleteCampaign(ctx context.Context, vendorID, id primitive.ObjectID) error {
	return s.campaigns.Delete(ctx, vendorID, id)
}

func (s *CampaignService) apply(ctx context.Context, c *models.Campaign, input models.CampaignInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return validationError("name is required")
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch status {
	case "":
		status = models.CampaignDraft
	case models.CampaignDraft, models.CampaignActive, models.CampaignPaused, models.CampaignCompleted:
	default:
		return validationError("unknown status %q", input.Status)
	}

	audience := strings.ToLower(strings.TrimSpace(input.TargetAudience))
	switch audience {
	case "":
		audience = models.AudienceAll
	case models.AudienceAll, models.AudiencePremium, models.AudienceNew:
	default:
		return validationError("unknown target audience %q", input.TargetAudience)
	}

	c.TemplateID = nil
	if input.TemplateID != "" {
		templateID, err := primitive.ObjectIDFromHex(input.TemplateID)
		if err != nil {
			return validationError("invalid template id")
		}
		if _, err := s.templates.FindByID(ctx, c.VendorID, templateID); err != nil {
			return err
		}
		c.TemplateID = &templateID
	} else if strings.TrimSpace(input.Message) == "" {
		return validationError("message or template is required")
	}

	c.Name = name
	c.Status = status
	c.TargetAudience = audience
	c.Message = input.Message
	c.ScheduledAt = input.ScheduledAt
	return nil
}
