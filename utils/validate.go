package utils

import (
	"regexp"
	"strings"
)

var (
	nameRe  = regexp.MustCompile(`^[\p{L}][\p{L} .'-]*$`)
	phoneRe = regexp.MustCompile(`^[0-9]+$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidName accepts letters (any script), spaces and ' . - between them.
// Digits and other symbols are rejected.
func ValidName(name string) bool {
	return nameRe.MatchString(strings.TrimSpace(name))
}

// ValidPhone accepts digit-only numbers of 9 to 11 digits.
func ValidPhone(phone string) bool {
	p := strings.TrimSpace(phone)
	if len(p) < 9 || len(p) > 11 {
		return false
	}
	return phoneRe.MatchString(p)
}

func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// NonBlank reports whether s contains anything besides whitespace.
func NonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
