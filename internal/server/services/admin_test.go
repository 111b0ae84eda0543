package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/common"
)

func TestAdminLogin_Success(t *testing.T) {
	svc := NewAdminService(adminConfig(), nop)

	sess, err := svc.Login(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "admin", sess.Username)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), sess.ExpiresAt, time.Minute)

	claims, err := svc.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, common.RoleAdmin, claims.Role)
}

func TestAdminLogin_BadCredentials(t *testing.T) {
	svc := NewAdminService(adminConfig(), nop)

	cases := []struct{ user, pass string }{
		{"admin", "wrong"},
		{"root", "s3cret-pass"},
		{"", ""},
		{"Admin", "s3cret-pass"},
		{"admin", "s3cret-pass "},
	}
	for _, c := range cases {
		sess, err := svc.Login(context.Background(), c.user, c.pass)
		assert.Nil(t, sess)
		require.Error(t, err)
		assert.Equal(t, common.KindAuthentication, common.KindOf(err))
		assert.Equal(t, "invalid username or password", common.MessageOf(err))
	}
}

func TestAdminLogin_NotConfigured(t *testing.T) {
	for name, unset := range map[string]func(cfgUser, cfgPass, cfgSecret *string){
		"username": func(u, _, _ *string) { *u = "" },
		"password": func(_, p, _ *string) { *p = "" },
		"secret":   func(_, _, s *string) { *s = "" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := adminConfig()
			unset(&cfg.AdminUsername, &cfg.AdminPassword, &cfg.SecretKey)
			svc := NewAdminService(cfg, nop)

			_, err := svc.Login(context.Background(), "admin", "s3cret-pass")
			require.Error(t, err)
			assert.Equal(t, common.KindConfiguration, common.KindOf(err))
		})
	}
}

func TestAdminVerify(t *testing.T) {
	svc := NewAdminService(adminConfig(), nop)

	_, err := svc.Verify("")
	assert.Equal(t, common.KindAuthentication, common.KindOf(err))

	_, err = svc.Verify("not.a.jwt")
	assert.Equal(t, common.KindAuthentication, common.KindOf(err))

	other := adminConfig()
	other.SecretKey = "another-secret"
	sess, err := NewAdminService(other, nop).Login(context.Background(), "admin", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Verify(sess.Token)
	assert.Equal(t, common.KindAuthentication, common.KindOf(err))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
