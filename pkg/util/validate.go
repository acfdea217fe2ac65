package util

import (
	"regexp"
)

var (
	phoneRegex      = regexp.MustCompile(`^\+?\d{10,15}$`)
	countryRegex    = regexp.MustCompile(`^\+\d{1,3}$`)
	postalCodeRegex = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	itemNameRegex   = regexp.MustCompile(`^[a-zA-Z0-9 \-]+$`)
)

// IsValidPhoneNumber reports whether s is 10-15 digits with an optional + prefix
func IsValidPhoneNumber(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsValidCountryCode reports whether s is a + followed by 1-3 digits
func IsValidCountryCode(s string) bool {
	return countryRegex.MatchString(s)
}

// IsValidPostalCode reports whether s is a 5-digit ZIP with an optional +4 suffix
func IsValidPostalCode(s string) bool {
	return postalCodeRegex.MatchString(s)
}

// IsValidItemName reports whether s contains only letters, digits, spaces and hyphens
func IsValidItemName(s string) bool {
	return s != "" && itemNameRegex.MatchString(s)
}
