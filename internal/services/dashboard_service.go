package services

import (
	"context"
	"errors"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const growthMonths = 6

// DashboardService aggregates overview statistics
type DashboardService struct {
	users      repositories.UserRepository
	contacts   repositories.ContactRepository
	campaigns  repositories.CampaignRepository
	messages   repositories.MessageRepository
	templates  repositories.TemplateRepository
	businesses repositories.BusinessRepository
	now        func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	users repositories.UserRepository,
	contacts repositories.ContactRepository,
	campaigns repositories.CampaignRepository,
	messages repositories.MessageRepository,
	templates repositories.TemplateRepository,
	businesses repositories.BusinessRepository,
) *DashboardService {
	return &DashboardService{
		users:      users,
		contacts:   contacts,
		campaigns:  campaigns,
		messages:   messages,
		templates:  templates,
		businesses: businesses,
		now:        time.Now,
	}
}

// AdminDashboard builds the platform-wide overview
func (s *DashboardService) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	var (
		d   models.AdminDashboard
		err error
	)
	if d.TotalVendors, err = s.users.Count(ctx, models.RoleVendor, ""); err != nil {
		return nil, err
	}
	if d.ActiveVendors, err = s.users.Count(ctx, models.RoleVendor, models.UserStatusActive); err != nil {
		return nil, err
	}
	if d.TotalContacts, err = s.contacts.Count(ctx, primitive.NilObjectID); err != nil {
		return nil, err
	}

	campaignCounts, err := s.campaigns.CountByStatus(ctx, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	byCampaign := groupMap(campaignCounts)
	for _, n := range byCampaign {
		d.TotalCampaigns += n
	}
	d.CampaignStats = models.CampaignStats{
		Active:    byCampaign[models.CampaignActive],
		Completed: byCampaign[models.CampaignCompleted],
	}
	d.CampaignStats.Draft = d.TotalCampaigns - d.CampaignStats.Active - d.CampaignStats.Completed

	messageCounts, err := s.messages.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byMessage := groupMap(messageCounts)
	d.MessagesInQueue = byMessage[models.MessageQueued]
	d.MessagesProcessed = byMessage[models.MessageSent] + byMessage[models.MessageDelivered]
	d.Performance = models.Performance{
		DeliveryRate:   deliveryRate(byMessage),
		QueuedMessages: d.MessagesInQueue,
	}

	now := s.now()
	start := time.Date(now.Year(), now.Month()-growthMonths+1, 1, 0, 0, 0, 0, now.Location())
	buckets, err := s.users.CountCreatedByMonth(ctx, models.RoleVendor, start)
	if err != nil {
		return nil, err
	}
	d.VendorGrowth = vendorGrowth(start, buckets)
	return &d, nil
}

// VendorDashboard builds the overview of one vendor
func (s *DashboardService) VendorDashboard(ctx context.Context, vendorID primitive.ObjectID) (*models.VendorDashboard, error) {
	var (
		d   models.VendorDashboard
		err error
	)
	if d.TotalContacts, err = s.contacts.Count(ctx, vendorID); err != nil {
		return nil, err
	}

	templateCounts, err := s.templates.CountBy(ctx, vendorID, "status", time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	d.TemplatesByStatus = groupMap(templateCounts)
	for _, n := range d.TemplatesByStatus {
		d.TotalTemplates += n
	}

	campaignCounts, err := s.campaigns.CountByStatus(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	for _, g := range campaignCounts {
		d.TotalCampaigns += g.Count
	}

	business, err := s.businesses.FindByUserID(ctx, vendorID)
	switch {
	case err == nil:
		d.BusinessConnected = business.WabaID != "" && business.Status == models.BusinessStatusActive
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}
	return &d, nil
}

// vendorGrowth lays buckets onto the growthMonths months starting at start,
// zero-filling months without signups.
func vendorGrowth(start time.Time, buckets []models.MonthBucket) []models.MonthlyCount {
	counts := make(map[[2]int]int64, len(buckets))
	for _, b := range buckets {
		counts[[2]int{b.Year, b.Month}] = b.Count
	}
	out := make([]models.MonthlyCount, 0, growthMonths)
	for i := 0; i < growthMonths; i++ {
		m := start.AddDate(0, i, 0)
		out = append(out, models.MonthlyCount{
			Month:   m.Month().String()[:3],
			Vendors: counts[[2]int{m.Year(), int(m.Month())}],
		})
	}
	return out
}

// deliveryRate is delivered messages as a rounded percentage of all non-queued messages
func deliveryRate(byStatus map[string]int64) int {
	var sent int64
	for status, n := range byStatus {
		if status != models.MessageQueued {
			sent += n
		}
	}
	if sent == 0 {
		return 0
	}
	return int((byStatus[models.MessageDelivered]*100 + sent/2) / sent)
}

func groupMap(groups []models.GroupCount) map[string]int64 {
	out := make(map[string]int64, len(groups))
	for _, g := range groups {
		out[g.Key] += g.Count
	}
	return out
}
