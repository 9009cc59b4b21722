package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateCategory is the platform category a template is reviewed under
type TemplateCategory string

const (
	CategoryMarketing      TemplateCategory = "MARKETING"
	CategoryUtility        TemplateCategory = "UTILITY"
	CategoryAuthentication TemplateCategory = "AUTHENTICATION"
)

// ParseTemplateCategory normalizes a category string, defaulting to UTILITY when empty
func ParseTemplateCategory(s string) (TemplateCategory, error) {
	switch c := TemplateCategory(strings.ToUpper(strings.TrimSpace(s))); c {
	case "":
		return CategoryUtility, nil
	case CategoryMarketing, CategoryUtility, CategoryAuthentication:
		return c, nil
	default:
		return "", fmt.Errorf("unknown template category %q", s)
	}
}

// TemplateStatus is the review state of a template
type TemplateStatus string

const (
	StatusDraft    TemplateStatus = "DRAFT"
	StatusPending  TemplateStatus = "PENDING"
	StatusApproved TemplateStatus = "APPROVED"
	StatusRejected TemplateStatus = "REJECTED"
	StatusPaused   TemplateStatus = "PAUSED"
	StatusLimited  TemplateStatus = "LIMITED"
)

// ParseTemplateStatus maps a status string onto the known set
func ParseTemplateStatus(s string) (TemplateStatus, error) {
	switch st := TemplateStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusPaused, StatusLimited:
		return st, nil
	default:
		return "", fmt.Errorf("unknown template status %q", s)
	}
}

// QualityRating is the platform's quality signal for an approved template
type QualityRating string

const (
	QualityRed    QualityRating = "RED"
	QualityYellow QualityRating = "YELLOW"
	QualityGreen  QualityRating = "GREEN"
	QualityNA     QualityRating = "NA"
)

// ParseQualityRating never fails; anything unrecognized is NA
func ParseQualityRating(s string) QualityRating {
	switch q := QualityRating(strings.ToUpper(strings.TrimSpace(s))); q {
	case QualityRed, QualityYellow, QualityGreen:
		return q
	default:
		return QualityNA
	}
}

// HeaderType tags the header variant
type HeaderType string

const (
	HeaderNone     HeaderType = "NONE"
	HeaderText     HeaderType = "TEXT"
	HeaderImage    HeaderType = "IMAGE"
	HeaderVideo    HeaderType = "VIDEO"
	HeaderDocument HeaderType = "DOCUMENT"
)

// IsMedia reports whether the header carries a media reference instead of text
func (h HeaderType) IsMedia() bool {
	return h == HeaderImage || h == HeaderVideo || h == HeaderDocument
}

// TemplateHeader is a tagged variant: Text is meaningful for TEXT headers,
// MediaReference for IMAGE/VIDEO/DOCUMENT, neither for NONE.
type TemplateHeader struct {
	Type           HeaderType `bson:"type" json:"type"`
	Text           string     `bson:"text,omitempty" json:"text,omitempty"`
	Example        []string   `bson:"example,omitempty" json:"example,omitempty"`
	MediaReference string     `bson:"mediaReference,omitempty" json:"mediaReference,omitempty"`
}

// NoHeader returns the empty header variant
func NoHeader() TemplateHeader { return TemplateHeader{Type: HeaderNone} }

// TextHeader returns a TEXT header with optional sample values
func TextHeader(text string, example ...string) TemplateHeader {
	return TemplateHeader{Type: HeaderText, Text: text, Example: example}
}

// MediaHeader returns an IMAGE, VIDEO or DOCUMENT header
func MediaHeader(kind HeaderType, reference string) TemplateHeader {
	return TemplateHeader{Type: kind, MediaReference: reference}
}

// Validate checks that only the fields of the tagged variant are populated
func (h TemplateHeader) Validate() error {
	switch h.Type {
	case "", HeaderNone:
		if h.Text != "" || h.MediaReference != "" {
			return fmt.Errorf("header of type NONE must not carry text or media")
		}
	case HeaderText:
		if h.MediaReference != "" {
			return fmt.Errorf("text header must not carry a media reference")
		}
		if h.Text == "" {
			return fmt.Errorf("text header requires text")
		}
	case HeaderImage, HeaderVideo, HeaderDocument:
		if h.Text != "" {
			return fmt.Errorf("%s header must not carry text", strings.ToLower(string(h.Type)))
		}
	default:
		return fmt.Errorf("unknown header type %q", h.Type)
	}
	return nil
}

// TemplateBody holds the mandatory message text and its sample substitutions
type TemplateBody struct {
	Text    string   `bson:"text" json:"text"`
	Example []string `bson:"example,omitempty" json:"example,omitempty"`
}

// TemplateFooter holds optional footer text
type TemplateFooter struct {
	Text string `bson:"text" json:"text"`
}

// ButtonType tags the button variant
type ButtonType string

const (
	ButtonQuickReply  ButtonType = "QUICK_REPLY"
	ButtonURL         ButtonType = "URL"
	ButtonPhoneNumber ButtonType = "PHONE_NUMBER"
)

// TemplateButton is a tagged variant keyed on Type. URL and Example belong to
// URL buttons, PhoneNumber to PHONE_NUMBER buttons.
type TemplateButton struct {
	Type        ButtonType `bson:"type" json:"type"`
	Text        string     `bson:"text" json:"text"`
	URL         string     `bson:"url,omitempty" json:"url,omitempty"`
	PhoneNumber string     `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Example     []string   `bson:"example,omitempty" json:"example,omitempty"`
}

// Validate checks required fields for the button variant
func (b TemplateButton) Validate() error {
	if b.Text == "" {
		return fmt.Errorf("button text is required")
	}
	switch b.Type {
	case ButtonQuickReply:
		return nil
	case ButtonURL:
		if b.URL == "" {
			return fmt.Errorf("url button requires a url")
		}
		return nil
	case ButtonPhoneNumber:
		if b.PhoneNumber == "" {
			return fmt.Errorf("phone number button requires a phone number")
		}
		return nil
	default:
		return fmt.Errorf("unknown button type %q", b.Type)
	}
}

// Template is a WhatsApp message template owned by one vendor and bound to
// one WhatsApp Business Account.
type Template struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name               string             `bson:"name" json:"name"`
	Category           TemplateCategory   `bson:"category" json:"category"`
	Language           string             `bson:"language" json:"language"`
	Header             TemplateHeader     `bson:"header" json:"header"`
	Body               TemplateBody       `bson:"body" json:"body"`
	Footer             TemplateFooter     `bson:"footer" json:"footer"`
	Buttons            []TemplateButton   `bson:"buttons" json:"buttons"`
	Status             TemplateStatus     `bson:"status" json:"status"`
	QualityRating      QualityRating      `bson:"qualityRating" json:"qualityRating"`
	RejectedReason     string             `bson:"rejectedReason,omitempty" json:"rejectedReason,omitempty"`
	ExternalTemplateID string             `bson:"templateId,omitempty" json:"templateId,omitempty"`
	Namespace          string             `bson:"namespace,omitempty" json:"namespace,omitempty"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	WabaID             string             `bson:"wabaId" json:"wabaId"`
	BusinessID         string             `bson:"businessId" json:"businessId"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
	SubmittedAt        *time.Time         `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
	ApprovedAt         *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}

// TemplateContent is the structural part of a template, the unit the
// component codec translates to and from the platform's component array.
type TemplateContent struct {
	Header  TemplateHeader
	Body    TemplateBody
	Footer  TemplateFooter
	Buttons []TemplateButton
}

// Content returns the structural fields of t
func (t *Template) Content() TemplateContent {
	return TemplateContent{Header: t.Header, Body: t.Body, Footer: t.Footer, Buttons: t.Buttons}
}

// SetContent overwrites the structural fields of t
func (t *Template) SetContent(c TemplateContent) {
	t.Header = c.Header
	t.Body = c.Body
	t.Footer = c.Footer
	t.Buttons = c.Buttons
	if t.Buttons == nil {
		t.Buttons = []TemplateButton{}
	}
}

// TemplateFilter narrows template listings
type TemplateFilter struct {
	UserID   primitive.ObjectID
	Search   string
	Status   TemplateStatus
	Category TemplateCategory
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

// TemplateInput is the request body for creating or updating a template
type TemplateInput struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Language string           `json:"language"`
	Header   *TemplateHeader  `json:"header"`
	Body     TemplateBody     `json:"body"`
	Footer   TemplateFooter   `json:"footer"`
	Buttons  []TemplateButton `json:"buttons"`
}

// TemplateAnalytics summarizes a vendor's templates over a period
type TemplateAnalytics struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByCategory map[string]int64 `json:"byCategory"`
}

// GroupCount is one bucket of a grouped count aggregation
type GroupCount struct {
	Key   string `bson:"_id" json:"key"`
	Count int64  `bson:"count" json:"count"`
}
