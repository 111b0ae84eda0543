// Package csrf implements the double-submit token used by admin writes:
// the same random value travels in an HttpOnly cookie and in the request
// body, and a write proceeds only when both are present and equal.
package csrf

import (
	"crypto/subtle"
	"net/http"

	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/cookies"
)

// NewToken returns 32 random bytes as 64 lowercase hex characters.
func NewToken() (string, error) {
	return common.MakeRandHexString(common.CSRFTokenBytes)
}

// Issue generates a token, stores it in the csrf_token cookie and returns it
// so the caller can echo it in the response body.
func Issue(w http.ResponseWriter, opts cookies.Options) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", common.Wrap(common.KindUpstream, "generate csrf token", err)
	}
	cookies.Set(w, common.CSRFCookieName, token, 0, opts)
	return token, nil
}

// Validate compares the cookie value with the submitted body value. Any
// absence or mismatch is a forbidden error.
func Validate(r *http.Request, submitted string) error {
	stored := cookies.Value(r, common.CSRFCookieName)
	if stored == "" || submitted == "" {
		return common.Errorf(common.KindForbidden, "missing CSRF token")
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) != 1 {
		return common.Errorf(common.KindForbidden, "invalid CSRF token")
	}
	return nil
}
