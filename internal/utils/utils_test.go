package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 10},
		{"3", "25", 3, 25},
		{"-1", "0", 1, 10},
		{"abc", "1000", 1, MaxLimit},
	}
	for _, tt := range tests {
		page, limit := ParsePagination(tt.page, tt.limit)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("ParsePagination(%q, %q) = %d, %d; want %d, %d", tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(21, 10); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if got := TotalPages(0, 10); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name        string
		countryCode string
		number      string
		wantE164    string
		wantErr     bool
	}{
		{"us with plus code", "+1", "201-555-0123", "+12015550123", false},
		{"gb without plus", "44", "07400 123456", "+447400123456", false},
		{"international only", "", "+447400123456", "+447400123456", false},
		{"too short", "+1", "12345", "", true},
		{"unknown code", "+999", "12345678", "", true},
		{"empty", "+1", " ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.countryCode, tt.number)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPhone) {
					t.Fatalf("got %v, want ErrInvalidPhone", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone: %v", err)
			}
			if got.E164 != tt.wantE164 {
				t.Errorf("got %q, want %q", got.E164, tt.wantE164)
			}
		})
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code, err := GenerateVerificationCode(6)
	if err != nil {
		t.Fatalf("GenerateVerificationCode: %v", err)
	}
	if len(code) != 6 || strings.Trim(code, "0123456789") != "" {
		t.Errorf("got %q, want 6 digits", code)
	}
	if _, err := GenerateVerificationCode(0); err == nil {
		t.Error("expected error for zero length")
	}
}

func TestParseContactsCSV(t *testing.T) {
	input := "\ufeffFirst Name,Phone Number,Country Code,Email,Tags\n" +
		"Ada,2015550123,+1,ADA@example.com,vip; early\n" +
		"Bob,,+1,,\n" +
		"Cy,7400123456,44,,\n"

	got, err := ParseContactsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseContactsCSV: %v", err)
	}
	if len(got.Contacts) != 2 {
		t.Fatalf("got %d contacts, want 2", len(got.Contacts))
	}
	ada := got.Contacts[0]
	if ada.FirstName != "Ada" || ada.Email != "ada@example.com" || ada.CountryCode != "+1" {
		t.Errorf("got %+v", ada)
	}
	if len(ada.Tags) != 2 || ada.Tags[1] != "early" {
		t.Errorf("got tags %v", ada.Tags)
	}
	if len(got.RowErrors) != 1 || !strings.Contains(got.RowErrors[0], "row 3") {
		t.Errorf("got row errors %v", got.RowErrors)
	}
}

func TestParseContactsCSVRequiresPhoneColumn(t *testing.T) {
	if _, err := ParseContactsCSV(strings.NewReader("name,email\nx,y\n")); err == nil {
		t.Error("expected error without phone column")
	}
	if _, err := ParseContactsCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}
