// Package identity signs customers and vendors in, either with an email and
// password or through a federated provider, and resolves the opaque session
// id the browser carries back into a Principal.
package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/logging"
	"github.com/umkmhub/marketplace/internal/server/identity/credentials"
	"github.com/umkmhub/marketplace/internal/server/identity/session"
	"github.com/umkmhub/marketplace/internal/server/models"
	"github.com/umkmhub/marketplace/internal/server/repositories/customers"
	"github.com/umkmhub/marketplace/internal/server/sanitize"
)

// Principal is the signed-in customer as seen by handlers.
type Principal struct {
	CustomerID  string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Service struct {
	customers customers.Repository
	sessions  session.Store
	validity  time.Duration
	logger    logging.Logger
	now       func() time.Time
}

func NewService(repo customers.Repository, sessions session.Store, validity time.Duration, logger logging.Logger) *Service {
	return &Service{
		customers: repo,
		sessions:  sessions,
		validity:  validity,
		logger:    logger.With("module", "identity"),
		now:       time.Now,
	}
}

func invalidCredentials() error {
	return common.Errorf(common.KindAuthentication, "invalid credentials")
}

// normalizeEmail accepts only a bare address and returns it lower-cased.
func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" || addr.Address != raw {
		return "", common.Errorf(common.KindValidation, "invalid email address")
	}
	return strings.ToLower(addr.Address), nil
}

// Register creates a password account and signs it in.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*session.Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	hash, err := credentials.HashPassword(password)
	if errors.Is(err, credentials.ErrPasswordTooShort) {
		return nil, common.Errorf(common.KindValidation, "password must be at least %d characters", credentials.MinPasswordLength)
	}
	if err != nil {
		return nil, common.Wrap(common.KindUpstream, "hash password", err)
	}

	name := sanitize.Text(strings.TrimSpace(displayName))
	if name == "" {
		name = sanitize.Text(email[:strings.LastIndex(email, "@")])
	}

	c, err := s.customers.Create(ctx, &models.Customer{
		Email:        email,
		DisplayName:  name,
		PasswordHash: hash,
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return nil, common.Errorf(common.KindValidation, "email already registered")
	}
	if err != nil {
		return nil, common.Wrap(common.KindUpstream, "create customer", err)
	}

	s.logger.Info(ctx, "customer registered", "customer_id", c.ID)
	return s.start(ctx, c)
}

// SignIn checks an email and password. Every failure that is not an
// upstream error reports the same "invalid credentials" message.
func (s *Service) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	c, err := s.customers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, common.Wrap(common.KindUpstream, "lookup customer", err)
	}

	if c.PasswordHash == "" || credentials.VerifyPassword(c.PasswordHash, password) != nil {
		return nil, invalidCredentials()
	}
	return s.start(ctx, c)
}

// SignInFederated finds or creates the account for a provider-verified
// identity. Unverified emails are refused so they cannot be linked to an
// existing account.
func (s *Service) SignInFederated(ctx context.Context, ident models.FederatedIdentity) (*session.Session, error) {
	if ident.Provider == "" || ident.ProviderUserID == "" || ident.Email == "" {
		return nil, invalidCredentials()
	}
	if !ident.EmailVerified {
		return nil, common.Errorf(common.KindAuthentication, "email not verified by provider")
	}
	ident.DisplayName = sanitize.Text(ident.DisplayName)

	c, err := s.customers.ResolveFederated(ctx, ident)
	if err != nil {
		return nil, common.Wrap(common.KindUpstream, "resolve federated identity", err)
	}
	return s.start(ctx, c)
}

func (s *Service) start(ctx context.Context, c *models.Customer) (*session.Session, error) {
	id, err := session.GenerateID()
	if err != nil {
		return nil, common.Wrap(common.KindUpstream, "session error", err)
	}

	sess := session.Session{
		ID:          id,
		CustomerID:  c.ID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		ExpiresAt:   s.now().Add(s.validity),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, common.Wrap(common.KindUpstream, "session error", err)
	}
	return &sess, nil
}

// Resolve returns the principal behind a session id. Unknown, expired and
// empty ids are authentication errors; a failing session store is an
// upstream error so callers can tell "signed out" from "could not check".
func (s *Service) Resolve(ctx context.Context, sessionID string) (*Principal, error) {
	if sessionID == "" {
		return nil, common.ErrorUnauthorized
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorUnauthorized
	}
	if err != nil {
		return nil, common.Wrap(common.KindUpstream, "session lookup failed", err)
	}
	if !sess.ExpiresAt.After(s.now()) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, common.ErrorUnauthorized
	}

	return &Principal{
		CustomerID:  sess.CustomerID,
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
	}, nil
}

func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return common.Wrap(common.KindUpstream, "session error", err)
	}
	return nil
}
