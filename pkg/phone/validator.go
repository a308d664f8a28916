package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// Normalize parses a phone number and returns it in E.164 format. region is
// the ISO country code used when the number has no international prefix.
func Normalize(phone, region string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}
	if region == "" {
		region = "IN"
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// IsMobile reports whether the number is a mobile (or mobile-capable) line.
// WhatsApp and SMS delivery both require one.
func IsMobile(phone, region string) (bool, error) {
	if phone == "" {
		return false, fmt.Errorf("phone number cannot be empty")
	}
	if region == "" {
		region = "IN"
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return false, fmt.Errorf("failed to parse phone number: %w", err)
	}

	switch phonenumbers.GetNumberType(parsed) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
		return true, nil
	}
	return false, nil
}
