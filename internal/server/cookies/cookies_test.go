package cookies

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_AppliesAttributes(t *testing.T) {
	rec := httptest.NewRecorder()

	Set(rec, "auth_token", "tok", 8*time.Hour, Options{Secure: true})

	res := rec.Result()
	cs := res.Cookies()
	require.Len(t, cs, 1)
	c := cs[0]

	assert.Equal(t, "auth_token", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, 8*60*60, c.MaxAge)
}

func TestSet_SessionCookieWithoutMaxAge(t *testing.T) {
	rec := httptest.NewRecorder()

	Set(rec, "csrf_token", "abc", 0, Options{})

	header := rec.Header().Get("Set-Cookie")
	assert.NotContains(t, header, "Max-Age")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "SameSite=Strict")
	assert.NotContains(t, header, "Secure")
}

func TestClear_ExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()

	Clear(rec, "auth_token", Options{}.WithSameSite(http.SameSiteLaxMode))

	header := rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, "auth_token=;")
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "SameSite=Lax")
}

func TestValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, Value(req, "session_id"))

	req.AddCookie(&http.Cookie{Name: "session_id", Value: "s1"})
	assert.Equal(t, "s1", Value(req, "session_id"))
}
