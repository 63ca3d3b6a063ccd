package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageExtension_SniffsContentType(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		ext  string
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), ".png"},
		{"gif", []byte("GIF89a\x01\x00\x01\x00"), ".gif"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, ".jpg"},
		{"unknown falls back to jpg", []byte("not an image at all"), ".jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ext, imageExtension(tc.data))
		})
	}
}

func TestSaveBase64Image_RejectsBadPayload(t *testing.T) {
	// fails at decode, before anything touches the filesystem
	_, err := SaveBase64Image("data:image/png;base64,@@not-base64@@", "properties")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode base64")
}
