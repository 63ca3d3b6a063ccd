package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildBookingStatusEmail_Approved(t *testing.T) {
	msg := BuildBookingStatusEmail("John Doe", "Riverside Residences", "2B", "approved", "", "BK-AB4D93KF")

	assert.Equal(t, "Your booking BK-AB4D93KF has been approved", msg.Subject)
	assert.Contains(t, msg.PlainBody, "Dear John Doe,")
	assert.Contains(t, msg.PlainBody, "2B unit at Riverside Residences has been approved")
	assert.Contains(t, msg.PlainBody, "BK-AB4D93KF")
	assert.Contains(t, msg.HTMLBody, "<strong>2B</strong>")
	assert.Contains(t, msg.HTMLBody, "Riverside Residences")
}

func TestBuildBookingStatusEmail_Rejected(t *testing.T) {
	msg := BuildBookingStatusEmail("John Doe", "Riverside Residences", "2B", "rejected", "Unit already reserved", "BK-AB4D93KF")

	assert.Equal(t, "Update on your booking BK-AB4D93KF", msg.Subject)
	assert.Contains(t, msg.PlainBody, "could not be confirmed")
	assert.Contains(t, msg.PlainBody, "Reason: Unit already reserved")
	assert.Contains(t, msg.HTMLBody, "Reason: Unit already reserved")
}

// Content is fully determined by its inputs; repeated builds are identical.
func TestBuildBookingStatusEmail_Deterministic(t *testing.T) {
	a := BuildBookingStatusEmail("Jane", "Park View", "3B", "rejected", "Sold out", "BK-11111111")
	b := BuildBookingStatusEmail("Jane", "Park View", "3B", "rejected", "Sold out", "BK-11111111")
	assert.Equal(t, a, b)
}

func TestBuildBookingStatusEmail_StripsHeaderInjection(t *testing.T) {
	msg := BuildBookingStatusEmail("John\r\nBcc: evil@x.y", "P", "2B", "approved", "", "BK-1")
	assert.NotContains(t, msg.Subject, "\n")
	// the CRLF in the name collapses to a single space, keeping it on one line
	assert.Contains(t, msg.PlainBody, "Dear John Bcc: evil@x.y,")

	// lone CR and LF collapse the same way
	for _, name := range []string{"John\rBcc: evil@x.y", "John\nBcc: evil@x.y"} {
		msg := BuildBookingStatusEmail(name, "P", "2B", "approved", "", "BK-1")
		assert.Contains(t, msg.PlainBody, "Dear John Bcc: evil@x.y,")
	}
}
