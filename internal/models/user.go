package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleVendor = "vendor"
)

// User account statuses
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User is an admin or vendor account
type User struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName               string             `bson:"firstName" json:"firstName"`
	LastName                string             `bson:"lastName" json:"lastName"`
	Email                   string             `bson:"email" json:"email"`
	Password                string             `bson:"password" json:"-"`
	WhatsappNumber          string             `bson:"whatsappNumber,omitempty" json:"whatsappNumber,omitempty"`
	WhatsappCountryCode     string             `bson:"whatsappCountryCode,omitempty" json:"whatsappCountryCode,omitempty"`
	BusinessName            string             `bson:"businessName,omitempty" json:"businessName,omitempty"`
	BusinessCountry         string             `bson:"businessCountry,omitempty" json:"businessCountry,omitempty"`
	BusinessWebsite         string             `bson:"businessWebsite,omitempty" json:"businessWebsite,omitempty"`
	UseCase                 string             `bson:"useCase,omitempty" json:"useCase,omitempty"`
	ContactSize             string             `bson:"contactSize,omitempty" json:"contactSize,omitempty"`
	MonthlyBudget           string             `bson:"monthlyBudget,omitempty" json:"monthlyBudget,omitempty"`
	BusinessCategory        string             `bson:"businessCategory,omitempty" json:"businessCategory,omitempty"`
	CompanySize             string             `bson:"companySize,omitempty" json:"companySize,omitempty"`
	RoleInCompany           string             `bson:"roleInCompany,omitempty" json:"roleInCompany,omitempty"`
	ReferralSource          string             `bson:"referralSource,omitempty" json:"referralSource,omitempty"`
	Role                    string             `bson:"role" json:"role"`
	Status                  string             `bson:"status" json:"status"`
	IsEmailVerified         bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	VerificationCode        string             `bson:"verificationCode,omitempty" json:"-"`
	VerificationCodeExpires *time.Time         `bson:"verificationCodeExpires,omitempty" json:"-"`
	LastLogin               *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt               time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the account may sign in
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == UserStatusActive
}

// UserFilter narrows user listings
type UserFilter struct {
	Role   string
	Status string
	Search string
	Page   int
	Limit  int
}
