package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message delivery statuses
const (
	MessageQueued    = "queued"
	MessageSent      = "sent"
	MessageDelivered = "delivered"
	MessageFailed    = "failed"
)

// Message is one campaign message addressed to one contact
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID     primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	VendorID       primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	ContactID      primitive.ObjectID `bson:"contactId" json:"contactId"`
	PhoneNumber    string             `bson:"phoneNumber" json:"phoneNumber"`
	Message        string             `bson:"message" json:"message"`
	Status         string             `bson:"status" json:"status"`
	SentAt         *time.Time         `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	DeliveryStatus string             `bson:"deliveryStatus,omitempty" json:"deliveryStatus,omitempty"`
	Cost           float64            `bson:"cost" json:"cost"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
