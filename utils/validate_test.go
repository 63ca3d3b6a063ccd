package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("John Doe"))
	assert.True(t, ValidName("Mary-Jane O'Neill"))
	assert.True(t, ValidName("José Núñez"))

	assert.False(t, ValidName("John123"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("   "))
	assert.False(t, ValidName("a@b"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("0912345678"))
	assert.True(t, ValidPhone("091234567"))
	assert.True(t, ValidPhone("09123456789"))

	assert.False(t, ValidPhone("12345678"))        // too short
	assert.False(t, ValidPhone("091234567890"))    // too long
	assert.False(t, ValidPhone("09-1234-5678"))    // separators
	assert.False(t, ValidPhone("09123456a8"))      // letters
	assert.False(t, ValidPhone(""))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("john@example.com"))
	assert.True(t, ValidEmail("  john@example.com  "))

	assert.False(t, ValidEmail("john@example"))
	assert.False(t, ValidEmail("john.example.com"))
	assert.False(t, ValidEmail("jo hn@example.com"))
	assert.False(t, ValidEmail(""))
}

func TestNonBlank(t *testing.T) {
	assert.True(t, NonBlank("x"))
	assert.False(t, NonBlank(""))
	assert.False(t, NonBlank(" \t\n"))
}
