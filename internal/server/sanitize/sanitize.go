// Package sanitize strips markup from user-supplied text before it is stored.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.StrictPolicy()

// Text returns s with every HTML element removed and only its text content
// kept. Script and style bodies are dropped entirely.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// Optional returns a sanitized copy of *s, or nil when s is nil.
func Optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}
