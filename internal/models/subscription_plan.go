package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan names
const (
	PlanFree    = "Free"
	PlanBasic   = "Basic"
	PlanPremium = "Premium"
)

// SubscriptionPlan is a vendor pricing tier
type SubscriptionPlan struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	ContactsLimit int                `bson:"contactsLimit" json:"contactsLimit"`
	MonthlyPrice  float64            `bson:"monthlyPrice" json:"monthlyPrice"`
	YearlyPrice   float64            `bson:"yearlyPrice" json:"yearlyPrice"`
	Features      []string           `bson:"features" json:"features"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	Position      int                `bson:"position" json:"position"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
