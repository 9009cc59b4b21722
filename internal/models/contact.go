package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact categories
const (
	ContactCustomer = "customer"
	ContactLead     = "lead"
	ContactSupplier = "supplier"
	ContactOther    = "other"
)

// Contact is an entry in a vendor's address book
type Contact struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VendorID      primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	FirstName     string             `bson:"firstName" json:"firstName"`
	LastName      string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	CountryCode   string             `bson:"countryCode" json:"countryCode"`
	PhoneNumber   string             `bson:"phoneNumber" json:"phoneNumber"`
	E164          string             `bson:"e164" json:"e164"`
	Country       string             `bson:"country,omitempty" json:"country,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Company       string             `bson:"company,omitempty" json:"company,omitempty"`
	Category      string             `bson:"category" json:"category"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Source        string             `bson:"source,omitempty" json:"source,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	LastContacted *time.Time         `bson:"lastContacted,omitempty" json:"lastContacted,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ContactFilter narrows contact listings
type ContactFilter struct {
	VendorID primitive.ObjectID
	Search   string
	Category string
	Page     int
	Limit    int
}

// BulkCreateResult reports the outcome of a bulk contact insert
type BulkCreateResult struct {
	Created    []*Contact `json:"created"`
	Duplicates []string   `json:"duplicates"`
	Errors     []string   `json:"errors"`
}

// BulkDeleteResult reports the outcome of a bulk contact delete
type BulkDeleteResult struct {
	Deleted  int64    `json:"deleted"`
	NotFound []string `json:"notFound"`
	Errors   []string `json:"errors"`
}
