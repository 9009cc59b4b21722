package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhone is returned for numbers that do not parse or validate
var ErrInvalidPhone = errors.New("invalid phone number")

// Phone is a validated phone number
type Phone struct {
	CountryCode string // "+" followed by the calling code
	National    string // national significant number
	E164        string
	Region      string
}

// NormalizePhone validates number against countryCode ("+44", "44" or empty
// when number is already international) and returns its canonical forms.
func NormalizePhone(countryCode, number string) (Phone, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Phone{}, fmt.Errorf("%w: number is empty", ErrInvalidPhone)
	}

	region := "ZZ"
	if cc := strings.TrimPrefix(strings.TrimSpace(countryCode), "+"); cc != "" {
		code, err := strconv.Atoi(cc)
		if err != nil {
			return Phone{}, fmt.Errorf("%w: bad country code %q", ErrInvalidPhone, countryCode)
		}
		region = phonenumbers.GetRegionCodeForCountryCode(code)
		if region == "ZZ" {
			return Phone{}, fmt.Errorf("%w: unknown country code %q", ErrInvalidPhone, countryCode)
		}
	} else if !strings.HasPrefix(number, "+") {
		number = "+" + number
	}

	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		return Phone{}, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return Phone{}, fmt.Errorf("%w: %s", ErrInvalidPhone, number)
	}

	return Phone{
		CountryCode: "+" + strconv.Itoa(int(parsed.GetCountryCode())),
		National:    phonenumbers.GetNationalSignificantNumber(parsed),
		E164:        phonenumbers.Format(parsed, phonenumbers.E164),
		Region:      phonenumbers.GetRegionCodeForNumber(parsed),
	}, nil
}
