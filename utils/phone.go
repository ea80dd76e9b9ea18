package utils

import (
	"regexp"
	"strings"
)

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// NormalizePhoneNumber strips formatting from a customer phone number,
// keeping a single leading + for international numbers. Bookings come from
// visitors worldwide so no country code is assumed.
func NormalizePhoneNumber(phoneNumber string) string {
	cleaned := nonPhoneChars.ReplaceAllString(phoneNumber, "")
	if strings.HasPrefix(cleaned, "+") {
		return "+" + strings.ReplaceAll(cleaned[1:], "+", "")
	}
	return strings.ReplaceAll(cleaned, "+", "")
}

// ValidatePhoneNumber accepts international numbers of a plausible length.
func ValidatePhoneNumber(phoneNumber string) bool {
	digits := regexp.MustCompile(`\D`).ReplaceAllString(phoneNumber, "")
	return len(digits) >= 7 && len(digits) <= 15
}
