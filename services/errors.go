package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared across services. Controllers translate these to
// HTTP status codes; everything else is treated as a backend failure.
var (
	ErrBookingNotFound      = errors.New("booking_not_found")
	ErrPropertyNotFound     = errors.New("property_not_found")
	ErrAppointmentNotFound  = errors.New("appointment_not_found")
	ErrAnnouncementNotFound = errors.New("announcement_not_found")
	ErrCaptchaFailed        = errors.New("captcha_failed")
)

// ValidationError carries per-field messages for malformed submissions.
// It is always produced before any row is written.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
