package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Config categories
const (
	ConfigGeneral  = "general"
	ConfigSocial   = "social"
	ConfigEmail    = "email"
	ConfigJWT      = "jwt"
	ConfigDatabase = "database"
)

// DecryptionErrorValue replaces values that cannot be decrypted
const DecryptionErrorValue = "DECRYPTION_ERROR"

// SystemConfig is a configuration entry managed by admins. Value is stored
// encrypted; services hand out decrypted copies.
type SystemConfig struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key         string             `bson:"key" json:"key"`
	Value       string             `bson:"value" json:"value"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"`
	IsPublic    bool               `bson:"isPublic" json:"isPublic"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SystemConfigInput is the admin upsert payload
type SystemConfigInput struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsPublic    bool   `json:"isPublic"`
}
