// Package services contains the marketplace business logic sitting between
// the HTTP handlers and the repositories. This file implements AdminService,
// which authenticates the single configured administrator and verifies the
// session tokens it issues.
package services

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/auth"
	"github.com/umkmhub/marketplace/internal/server/config"
)

// AdminSession is a freshly minted admin token and its absolute expiry.
type AdminSession struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

type AdminService struct {
	username string
	password string
	secret   []byte
	validity time.Duration
	logger   logging.Logger
}

func NewAdminService(cfg *config.Config, logger logging.Logger) *AdminService {
	return &AdminService{
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		secret:   []byte(cfg.SecretKey),
		validity: cfg.AdminSessionValidity,
		logger:   logger.With("module", "admin"),
	}
}

func (s *AdminService) configured() error {
	if s.username == "" || s.password == "" || len(s.secret) == 0 {
		return common.Errorf(common.KindConfiguration, "admin credentials are not configured")
	}
	return nil
}

// Validity is the lifetime of tokens minted by Login.
func (s *AdminService) Validity() time.Duration {
	return s.validity
}

// Login checks the supplied pair against the configured credential. Both
// fields are always compared so a matching username alone is not
// observable.
func (s *AdminService) Login(ctx context.Context, username, password string) (*AdminSession, error) {
	if err := s.configured(); err != nil {
		return nil, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password))
	if userOK&passOK != 1 {
		s.logger.Warn(ctx, "admin login rejected")
		return nil, common.Errorf(common.KindAuthentication, "invalid username or password")
	}

	token, exp, err := auth.GenerateAdminToken(s.username, s.secret, s.validity)
	if err != nil {
		return nil, common.Wrap(common.KindUpstream, "sign admin token", err)
	}

	s.logger.Info(ctx, "admin logged in")
	return &AdminSession{Token: token, Username: s.username, ExpiresAt: exp}, nil
}

// Verify checks a token from the auth_token cookie.
func (s *AdminService) Verify(token string) (*auth.AdminClaims, error) {
	if len(s.secret) == 0 {
		return nil, common.Errorf(common.KindConfiguration, "admin credentials are not configured")
	}
	if token == "" {
		return nil, common.Errorf(common.KindAuthentication, "missing admin session")
	}

	claims, err := auth.ParseAdminToken(token, s.secret)
	if err != nil {
		return nil, common.Wrap(common.KindAuthentication, "invalid or expired admin session", err)
	}
	return claims, nil
}
