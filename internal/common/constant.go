// Package common contains the constants, sentinel errors and error kinds
// shared by every layer of the marketplace server.
package common

// Cookie and form field names used by the admin session, CSRF protection
// and the customer session.
const (
	AdminTokenCookieName = "auth_token"
	CSRFCookieName       = "csrf_token"
	CSRFFormField        = "csrfToken"
	SessionCookieName    = "session_id"
	OAuthStateCookieName = "oauth_state"
	PKCECookieName       = "oauth_pkce"
)

// RoleAdmin is the only role an admin token may carry.
const RoleAdmin = "admin"

// CSRFTokenBytes is the number of random bytes behind a CSRF token; the
// hex encoding doubles it to 64 characters.
const CSRFTokenBytes = 32
