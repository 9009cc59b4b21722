package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business connection statuses
const (
	BusinessStatusActive    = "active"
	BusinessStatusInactive  = "inactive"
	BusinessStatusPending   = "pending"
	BusinessStatusSuspended = "suspended"
)

// Business links a vendor to its WhatsApp Business Account and holds the
// credentials used for platform calls on the vendor's behalf.
type Business struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID               primitive.ObjectID `bson:"userId" json:"userId"`
	WabaID               string             `bson:"wabaId,omitempty" json:"wabaId,omitempty"`
	PhoneNumberID        string             `bson:"phoneNumberId,omitempty" json:"phoneNumberId,omitempty"`
	BusinessID           string             `bson:"businessId,omitempty" json:"businessId,omitempty"`
	AccessToken          string             `bson:"accessToken,omitempty" json:"-"`
	AccessTokenExpiresAt *time.Time         `bson:"accessTokenExpiresAt,omitempty" json:"accessTokenExpiresAt,omitempty"`
	BusinessName         string             `bson:"businessName,omitempty" json:"businessName,omitempty"`
	PhoneNumber          string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Status               string             `bson:"status" json:"status"`
	SignupCompleted      bool               `bson:"signupCompleted" json:"signupCompleted"`
	PermissionsGranted   bool               `bson:"permissionsGranted" json:"permissionsGranted"`
	TokenPermissions     []string           `bson:"tokenPermissions,omitempty" json:"tokenPermissions,omitempty"`
	ConnectedAt          time.Time          `bson:"connectedAt" json:"connectedAt"`
	LastUpdated          time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}

// SignupData is the payload the embedded signup flow posts back
type SignupData struct {
	WabaID        string `json:"waba_id"`
	PhoneNumberID string `json:"phone_number_id"`
	BusinessID    string `json:"business_id"`
}

// FacebookActionRequest is the single-endpoint request used by the frontend
// during WhatsApp onboarding.
type FacebookActionRequest struct {
	Action   string      `json:"action" binding:"required"`
	Code     string      `json:"code"`
	WabaData *SignupData `json:"wabaData"`
}

// PermissionReport compares granted token scopes with the required set
type PermissionReport struct {
	CurrentPermissions  []string `json:"current_permissions"`
	MissingPermissions  []string `json:"missing_permissions"`
	RequiredPermissions []string `json:"required_permissions"`
	HasAllPermissions   bool     `json:"has_all_permissions"`
}
