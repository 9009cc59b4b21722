package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ContactService manages vendor address books
type ContactService struct {
	contacts repositories.ContactRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewContactService creates a new ContactService
func NewContactService(contacts repositories.ContactRepository, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{contacts: contacts, logger: logger, now: time.Now}
}

// ListContacts returns a page of the vendor's contacts and the total match count
func (s *ContactService) ListContacts(ctx context.Context, filter models.ContactFilter) ([]*models.Contact, int64, error) {
	return s.contacts.FindAll(ctx, filter)
}

// GetContact returns one of the vendor's contacts
func (s *ContactService) GetContact(ctx context.Context, vendorID, id primitive.ObjectID) (*models.Contact, error) {
	return s.contacts.FindByID(ctx, vendorID, id)
}

// CreateContact validates and stores a contact for vendorID
func (s *ContactService) CreateContact(ctx context.Context, vendorID primitive.ObjectID, contact *models.Contact) (*models.Contact, error) {
	if err := normalizeContact(contact); err != nil {
		return nil, err
	}
	now := s.now()
	contact.ID = primitive.NilObjectID
	contact.VendorID = vendorID
	contact.IsActive = true
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateContact replaces the editable fields of an existing contact
func (s *ContactService) UpdateContact(ctx context.Context, vendorID, id primitive.ObjectID, input *models.Contact) (*models.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, vendorID, id)
	if err != nil {
		return nil, err
	}
	if err := normalizeContact(input); err != nil {
		return nil, err
	}

	contact.FirstName = input.FirstName
	contact.LastName = input.LastName
	contact.CountryCode = input.CountryCode
	contact.PhoneNumber = input.PhoneNumber
	contact.E164 = input.E164
	contact.Country = input.Country
	contact.Email = input.Email
	contact.Company = input.Company
	contact.Category = input.Category
	contact.Tags = input.Tags
	contact.Notes = input.Notes
	contact.IsActive = input.IsActive
	contact.UpdatedAt = s.now()

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact deletes one of the vendor's contacts
func (s *ContactService) DeleteContact(ctx context.Context, vendorID, id primitive.ObjectID) error {
	return s.contacts.Delete(ctx, vendorID, id)
}

// BulkCreateContacts creates each contact independently; duplicates and
// invalid rows are reported, not fatal.
func (s *ContactService) BulkCreateContacts(ctx context.Context, vendorID primitive.ObjectID, contacts []*models.Contact) *models.BulkCreateResult {
	result := &models.BulkCreateResult{
		Created:    []*models.Contact{},
		Duplicates: []string{},
		Errors:     []string{},
	}
	for i, c := range contacts {
		created, err := s.CreateContact(ctx, vendorID, c)
		switch {
		case err == nil:
			result.Created = append(result.Created, created)
		case errors.Is(err, repositories.ErrIdentityConflict):
			result.Duplicates = append(result.Duplicates, c.CountryCode+c.PhoneNumber)
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("contact %d (%s): %v", i+1, c.PhoneNumber, err))
		}
	}
	return result
}

// BulkDeleteContacts deletes each id independently
func (s *ContactService) BulkDeleteContacts(ctx context.Context, vendorID primitive.ObjectID, ids []string) *models.BulkDeleteResult {
	result := &models.BulkDeleteResult{NotFound: []string{}, Errors: []string{}}
	for _, raw := range ids {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: invalid id", raw))
			continue
		}
		err = s.contacts.Delete(ctx, vendorID, id)
		switch {
		case err == nil:
			result.Deleted++
		case errors.Is(err, repositories.ErrNotFound):
			result.NotFound = append(result.NotFound, raw)
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", raw, err))
		}
	}
	return result
}

// ImportContactsCSV parses r and bulk-creates the contacts it holds.
// Unparseable rows are added to the result's errors.
func (s *ContactService) ImportContactsCSV(ctx context.Context, vendorID primitive.ObjectID, r io.Reader) (*models.BulkCreateResult, error) {
	parsed, err := utils.ParseContactsCSV(r)
	if err != nil {
		return nil, validationError("%v", err)
	}
	result := s.BulkCreateContacts(ctx, vendorID, parsed.Contacts)
	result.Errors = append(append([]string{}, parsed.RowErrors...), result.Errors...)

	s.logger.Info("contacts imported",
		zap.String("vendorId", vendorID.Hex()),
		zap.Int("created", len(result.Created)),
		zap.Int("duplicates", len(result.Duplicates)),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

func normalizeContact(c *models.Contact) error {
	c.FirstName = strings.TrimSpace(c.FirstName)
	if c.FirstName == "" {
		return validationError("first name is required")
	}
	phone, err := utils.NormalizePhone(c.CountryCode, c.PhoneNumber)
	if err != nil {
		return validationError("%v", err)
	}
	c.CountryCode = phone.CountryCode
	c.PhoneNumber = phone.National
	c.E164 = phone.E164
	if c.Country == "" {
		c.Country = phone.Region
	}
	c.Email = normalizeEmail(c.Email)

	switch c.Category = strings.ToLower(strings.TrimSpace(c.Category)); c.Category {
	case "":
		c.Category = models.ContactCustomer
	case models.ContactCustomer, models.ContactLead, models.ContactSupplier, models.ContactOther:
	default:
		return validationError("unknown category %q", c.Category)
	}
	return nil
}
