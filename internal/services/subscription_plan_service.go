package services

import (
	"context"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var defaultPlans = []models.SubscriptionPlan{
	{
		Name:          models.PlanFree,
		Description:   "Basic features for getting started",
		ContactsLimit: 1000,
		Features:      []string{"1,000 stored contacts", "Basic messaging features", "Standard support", "Limited analytics"},
		Position:      1,
		IsActive:      true,
	},
	{
		Name:          models.PlanBasic,
		Description:   "Essential features for growing businesses",
		ContactsLimit: 10000,
		MonthlyPrice:  999,
		YearlyPrice:   9999,
		Features:      []string{"10,000 stored contacts", "Advanced messaging features", "Priority support", "Basic analytics", "Bulk messaging", "Template messages"},
		Position:      2,
		IsActive:      true,
	},
	{
		Name:          models.PlanPremium,
		Description:   "Complete solution for enterprises",
		ContactsLimit: 50000,
		MonthlyPrice:  1999,
		YearlyPrice:   19999,
		Features:      []string{"50,000 stored contacts", "All messaging features", "24/7 priority support", "Advanced analytics", "API access", "Custom integrations", "Dedicated account manager"},
		Position:      3,
		IsActive:      true,
	},
}

// SubscriptionPlanService manages pricing plans
type SubscriptionPlanService struct {
	plans  repositories.SubscriptionPlanRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewSubscriptionPlanService creates a new SubscriptionPlanService
func NewSubscriptionPlanService(plans repositories.SubscriptionPlanRepository, logger *zap.Logger) *SubscriptionPlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionPlanService{plans: plans, logger: logger, now: time.Now}
}

// ListPlans returns plans ordered by position
func (s *SubscriptionPlanService) ListPlans(ctx context.Context, activeOnly bool) ([]*models.SubscriptionPlan, error) {
	return s.plans.FindAll(ctx, activeOnly)
}

// GetPlan returns a plan by id
func (s *SubscriptionPlanService) GetPlan(ctx context.Context, id primitive.ObjectID) (*models.SubscriptionPlan, error) {
	return s.plans.FindByID(ctx, id)
}

// CreatePlan stores a new plan
func (s *SubscriptionPlanService) CreatePlan(ctx context.Context, plan *models.SubscriptionPlan) (*models.SubscriptionPlan, error) {
	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	now := s.now()
	plan.ID = primitive.NilObjectID
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UpdatePlan replaces the editable fields of a plan
func (s *SubscriptionPlanService) UpdatePlan(ctx context.Context, id primitive.ObjectID, input *models.SubscriptionPlan) (*models.SubscriptionPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validatePlan(input); err != nil {
		return nil, err
	}
	plan.Name = input.Name
	plan.Description = input.Description
	plan.ContactsLimit = input.ContactsLimit
	plan.MonthlyPrice = input.MonthlyPrice
	plan.YearlyPrice = input.YearlyPrice
	plan.Features = input.Features
	plan.IsActive = input.IsActive
	plan.Position = input.Position
	plan.UpdatedAt = s.now()
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan deletes a plan
func (s *SubscriptionPlanService) DeletePlan(ctx context.Context, id primitive.ObjectID) error {
	return s.plans.Delete(ctx, id)
}

// SeedDefaultPlans creates the Free, Basic and Premium plans when no plan exists yet
func (s *SubscriptionPlanService) SeedDefaultPlans(ctx context.Context) error {
	count, err := s.plans.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, p := range defaultPlans {
		plan := p
		plan.Features = append([]string(nil), p.Features...)
		if _, err := s.CreatePlan(ctx, &plan); err != nil {
			return err
		}
	}
	s.logger.Info("default subscription plans created", zap.Int("count", len(defaultPlans)))
	return nil
}

func validatePlan(p *models.SubscriptionPlan) error {
	p.Name = strings.TrimSpace(p.Name)
	switch {
	case p.Name == "":
		return validationError("name is required")
	case p.ContactsLimit < 0:
		return validationError("contacts limit cannot be negative")
	case p.MonthlyPrice < 0 || p.YearlyPrice < 0:
		return validationError("prices cannot be negative")
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return nil
}
