package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/umkmhub/marketplace/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, exp, err := GenerateAdminToken("admin", secret, 8*time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken error: %v", err)
	}
	if d := time.Until(exp); d < 7*time.Hour || d > 8*time.Hour {
		t.Fatalf("unexpected expiry in %v", d)
	}

	claims, err := ParseAdminToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseAdminToken error: %v", err)
	}
	if claims.Username != "admin" || claims.Role != common.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseAdminToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, _, err := GenerateAdminToken("admin", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateAdminToken error: %v", err)
	}

	_, err = ParseAdminToken(tok, secret)
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseAdminToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := GenerateAdminToken("admin", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateAdminToken error: %v", err)
	}

	_, err = ParseAdminToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for invalid signature, got %v", err)
	}
}

func TestParseAdminToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseAdminToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestParseAdminToken_WrongRole(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Username: "vendor",
		Role:     "vendor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ParseAdminToken(tok, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for non-admin role, got %v", err)
	}
}

func TestParseAdminToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, AdminClaims{
		Username: "admin",
		Role:     common.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ParseAdminToken(tok, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}

func TestEmptySecret(t *testing.T) {
	t.Parallel()

	if _, _, err := GenerateAdminToken("admin", nil, time.Hour); err == nil {
		t.Fatalf("expected error when signing with an empty secret")
	}
	if _, err := ParseAdminToken("a.b.c", nil); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken with an empty secret, got %v", err)
	}
}
