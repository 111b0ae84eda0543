package csrf

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/cookies"
)

func TestIssue_SetsCookieAndReturnsToken(t *testing.T) {
	rec := httptest.NewRecorder()

	token, err := Issue(rec, cookies.Options{})
	require.NoError(t, err)

	assert.Len(t, token, 64)
	_, err = hex.DecodeString(token)
	require.NoError(t, err)

	cs := rec.Result().Cookies()
	require.Len(t, cs, 1)
	assert.Equal(t, common.CSRFCookieName, cs[0].Name)
	assert.Equal(t, token, cs[0].Value)
	assert.True(t, cs[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cs[0].SameSite)
}

func TestValidate(t *testing.T) {
	const token = "aa11bb22"

	tests := []struct {
		name      string
		cookie    string
		submitted string
		ok        bool
	}{
		{"match", token, token, true},
		{"mismatch", token, "aa11bb23", false},
		{"missing cookie", "", token, false},
		{"missing body", token, "", false},
		{"both missing", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/trainings", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: common.CSRFCookieName, Value: tt.cookie})
			}

			err := Validate(req, tt.submitted)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, common.KindForbidden, common.KindOf(err))
		})
	}
}
