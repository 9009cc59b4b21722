package whatsapp

import (
	"encoding/json"
	"fmt"
)

// Component types in the platform's template schema
const (
	ComponentHeader  = "HEADER"
	ComponentBody    = "BODY"
	ComponentFooter  = "FOOTER"
	ComponentButtons = "BUTTONS"
)

// Credentials scope platform calls to one WhatsApp Business Account
type Credentials struct {
	AccountID     string
	BusinessID    string
	AccessToken   string
	PhoneNumberID string
}

// Component is one entry of a template's component array
type Component struct {
	Type    string            `json:"type"`
	Format  string            `json:"format,omitempty"`
	Text    string            `json:"text,omitempty"`
	Example *ComponentExample `json:"example,omitempty"`
	Buttons []Button          `json:"buttons,omitempty"`
}

// ComponentExample carries sample values the platform reviews a template with
type ComponentExample struct {
	HeaderText   []string   `json:"header_text,omitempty"`
	HeaderHandle []string   `json:"header_handle,omitempty"`
	BodyText     SampleRows `json:"body_text,omitempty"`
}

// SampleRows is the body_text example. The platform documents it as a list
// of rows but older payloads send a single flat row; both decode.
type SampleRows [][]string

func (r *SampleRows) UnmarshalJSON(data []byte) error {
	var nested [][]string
	if err := json.Unmarshal(data, &nested); err == nil {
		*r = nested
		return nil
	}
	var flat []string
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("body_text example: %w", err)
	}
	*r = SampleRows{flat}
	return nil
}

// Button is a single button inside a BUTTONS component
type Button struct {
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	URL         string   `json:"url,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Example     []string `json:"example,omitempty"`
}

// QualityScore is the platform's quality signal
type QualityScore struct {
	Score string `json:"score"`
}

// RemoteTemplate is a template as listed by the platform
type RemoteTemplate struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Status         string        `json:"status"`
	Category       string        `json:"category"`
	Language       string        `json:"language"`
	Components     []Component   `json:"components"`
	QualityScore   *QualityScore `json:"quality_score,omitempty"`
	RejectedReason string        `json:"rejected_reason,omitempty"`
}

type templatePage struct {
	Data   []RemoteTemplate `json:"data"`
	Paging struct {
		Cursors struct {
			Before string `json:"before"`
			After  string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

type createTemplateRequest struct {
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Language   string      `json:"language"`
	Components []Component `json:"components"`
}

type createTemplateResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// AccessToken is the result of exchanging an embedded-signup code
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenInfo is the subset of debug_token output the backend uses
type TokenInfo struct {
	AppID     string   `json:"app_id"`
	IsValid   bool     `json:"is_valid"`
	ExpiresAt int64    `json:"expires_at"`
	Scopes    []string `json:"scopes"`
}
