// Package cookies writes and clears the HttpOnly cookies the server issues.
package cookies

import (
	"net/http"
	"time"
)

// Options are the attributes shared by every cookie the server sets.
type Options struct {
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func (o Options) normalize() Options {
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteStrictMode
	}
	return o
}

// WithSameSite returns a copy of o using mode.
func (o Options) WithSameSite(mode http.SameSite) Options {
	o.SameSite = mode
	return o
}

// Set writes an HttpOnly cookie. A zero maxAge makes it a session cookie.
func Set(w http.ResponseWriter, name, value string, maxAge time.Duration, opts Options) {
	opts = opts.normalize()

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: opts.SameSite,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
		c.Expires = time.Now().Add(maxAge)
	}

	http.SetCookie(w, c)
}

// Clear expires the cookie immediately.
func Clear(w http.ResponseWriter, name string, opts Options) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: opts.SameSite,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// Value returns the named cookie's value or "" when it is absent.
func Value(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
