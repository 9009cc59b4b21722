package models

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest defines the structure for vendor self-registration
type RegisterRequest struct {
	FirstName           string `json:"firstName" binding:"required"`
	LastName            string `json:"lastName" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=6"`
	WhatsappNumber      string `json:"whatsappNumber"`
	WhatsappCountryCode string `json:"whatsappCountryCode"`
	BusinessName        string `json:"businessName"`
	BusinessCountry     string `json:"businessCountry"`
	BusinessWebsite     string `json:"businessWebsite"`
	UseCase             string `json:"useCase"`
	ContactSize         string `json:"contactSize"`
	MonthlyBudget       string `json:"monthlyBudget"`
	BusinessCategory    string `json:"businessCategory"`
	CompanySize         string `json:"companySize"`
	RoleInCompany       string `json:"roleInCompany"`
	ReferralSource      string `json:"referralSource"`
}

// VerifyEmailRequest carries the emailed verification code
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// ResendVerificationRequest asks for a fresh verification code
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginResult is returned by a login attempt. Token is empty when the
// account still needs email verification.
type LoginResult struct {
	Token                string `json:"token,omitempty"`
	User                 *User  `json:"user"`
	RequiresVerification bool   `json:"requiresVerification"`
}

// VendorInput is the admin payload for creating or updating a vendor
type VendorInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	WhatsappNumber string `json:"whatsappNumber"`
	BusinessName   string `json:"businessName"`
	Status         string `json:"status"`
}
