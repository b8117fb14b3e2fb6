package utils

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// IsImageMIME walks the MIME hierarchy and reports whether m or one of its parents is an image type
func IsImageMIME(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

// DetectImage sniffs body and returns its MIME type and whether it is an image
func DetectImage(body []byte) (string, bool) {
	m := mimetype.Detect(body)
	return m.String(), IsImageMIME(m)
}
