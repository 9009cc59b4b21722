package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign statuses
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

// Campaign target audiences
const (
	AudienceAll     = "all"
	AudiencePremium = "premium"
	AudienceNew     = "new"
)

// Campaign represents a vendor's broadcast of one message to its contacts
type Campaign struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string              `bson:"name" json:"name"`
	VendorID       primitive.ObjectID  `bson:"vendorId" json:"vendorId"`
	TemplateID     *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	Status         string              `bson:"status" json:"status"`
	Message        string              `bson:"message" json:"message"`
	TargetAudience string              `bson:"targetAudience" json:"targetAudience"`
	ScheduledAt    *time.Time          `bson:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	SentCount      int                 `bson:"sentCount" json:"sentCount"`
	TotalContacts  int                 `bson:"totalContacts" json:"totalContacts"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CampaignInput is the request body for creating or updating a campaign
type CampaignInput struct {
	Name           string     `json:"name"`
	TemplateID     string     `json:"templateId"`
	Status         string     `json:"status"`
	Message        string     `json:"message"`
	TargetAudience string     `json:"targetAudience"`
	ScheduledAt    *time.Time `json:"scheduledAt"`
}
