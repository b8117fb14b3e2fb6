package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Smallest valid GIF
var tinyGIF = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func TestDetectImage(t *testing.T) {
	mime, ok := DetectImage(tinyGIF)
	assert.True(t, ok)
	assert.Equal(t, "image/gif", mime)

	mime, ok = DetectImage([]byte("<html><body>not found</body></html>"))
	assert.False(t, ok)
	assert.Contains(t, mime, "text/html")
}
