// Package auth issues and verifies the signed admin session token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/umkmhub/marketplace/internal/common"
)

// AdminClaims is the payload of an admin token. Role is always "admin".
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

var errEmptySecret = errors.New("empty signing secret")

// GenerateAdminToken signs an HS256 token for username that expires
// validity from now. The absolute expiry is returned alongside the token.
func GenerateAdminToken(username string, secretKey []byte, validity time.Duration) (string, time.Time, error) {
	if len(secretKey) == 0 {
		return "", time.Time{}, errEmptySecret
	}

	now := time.Now()
	expiresAt := now.Add(validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Username: username,
		Role:     common.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseAdminToken verifies signature, algorithm, expiry and role.
// An expired token yields common.ErrTokenExpired; every other failure wraps
// common.ErrInvalidToken.
func ParseAdminToken(tokenString string, secretKey []byte) (*AdminClaims, error) {
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, errEmptySecret)
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Role != common.RoleAdmin {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
