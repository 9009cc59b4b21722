package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
)

// ContactCSVResult holds the contacts parsed from an upload and the rows that
// could not be turned into one.
type ContactCSVResult struct {
	Contacts  []*models.Contact
	RowErrors []string
}

// ParseContactsCSV reads contacts from r. The header row is matched loosely
// ("Phone Number", "phone", "Mobile" ...); a phone column is required and
// every other column is optional. Tags are separated by ";". The returned
// contacts carry no vendor id and no validated phone.
func ParseContactsCSV(r io.Reader) (*ContactCSVResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	cols := map[string]int{
		"firstName":   findColumnIndex(header, []string{"firstName", "First Name", "Name"}),
		"lastName":    findColumnIndex(header, []string{"lastName", "Last Name", "Surname"}),
		"countryCode": findColumnIndex(header, []string{"countryCode", "Country Code", "Dial Code"}),
		"phoneNumber": findColumnIndex(header, []string{"phoneNumber", "Phone Number", "Phone", "Mobile", "WhatsApp"}),
		"email":       findColumnIndex(header, []string{"email", "Email Address"}),
		"company":     findColumnIndex(header, []string{"company", "Organization"}),
		"category":    findColumnIndex(header, []string{"category", "Type"}),
		"tags":        findColumnIndex(header, []string{"tags", "Labels"}),
		"notes":       findColumnIndex(header, []string{"notes", "Note"}),
	}
	if cols["phoneNumber"] == -1 {
		return nil, fmt.Errorf("phone number column not found in CSV")
	}

	result := &ContactCSVResult{}
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		get := func(name string) string {
			idx := cols[name]
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		phone := get("phoneNumber")
		if phone == "" {
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("row %d: no phone number", line))
			continue
		}

		contact := &models.Contact{
			FirstName:   get("firstName"),
			LastName:    get("lastName"),
			CountryCode: get("countryCode"),
			PhoneNumber: phone,
			Email:       strings.ToLower(get("email")),
			Company:     get("company"),
			Category:    strings.ToLower(get("category")),
			Notes:       get("notes"),
			Source:      "csv_import",
		}
		if tags := get("tags"); tags != "" {
			for _, tag := range strings.Split(tags, ";") {
				if tag = strings.TrimSpace(tag); tag != "" {
					contact.Tags = append(contact.Tags, tag)
				}
			}
		}
		result.Contacts = append(result.Contacts, contact)
	}

	return result, nil
}

// findColumnIndex finds the index of the first header matching any of the names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}
