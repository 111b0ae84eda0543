package imagestore

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrNotDataURL = errors.New("not a base64 data URL")

// Image is the decoded payload of a data URL.
type Image struct {
	ContentType string
	Data        []byte
}

// IsDataURL reports whether s looks like an inline data: URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURL decodes data:<mime>;base64,<payload>. Only base64 payloads
// are accepted.
func ParseDataURL(s string) (*Image, error) {
	if !IsDataURL(s) {
		return nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrNotDataURL
	}

	contentType := strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrNotDataURL
	}
	if len(data) == 0 {
		return nil, ErrNotDataURL
	}
	return &Image{ContentType: contentType, Data: data}, nil
}
