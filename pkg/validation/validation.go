package validation

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength matches the sign-up form requirement.
const MinPasswordLength = 6

// IsValidEmail validates email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidPassword checks the minimum password length
func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}

// SplitCityCountry parses a "City, Country" value. The country part is empty
// when no comma is present.
func SplitCityCountry(s string) (city, country string) {
	parts := strings.SplitN(s, ",", 2)
	city = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		country = strings.TrimSpace(parts[1])
	}
	return city, country
}
