// Package auth implements the token service and password hashing helpers.
package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignatureInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")

// TokenManager issues and verifies signed, time-limited identity
// assertions. Verification is pure: the same token verifies identically
// any number of times until it expires.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager signing with secret. A non-positive ttl
// falls back to one hour.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// clock returns the manager's time source, defaulting to the wall clock.
func (tm *TokenManager) clock() time.Time {
	if tm.now != nil {
		return tm.now()
	}
	return time.Now()
}

// Claims describes the JWT payload.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token asserting identity, expiring after the configured
// window.
func (tm *TokenManager) Issue(identity domain.Identity) (string, error) {
	claims := &Claims{
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			ExpiresAt: jwt.NewNumericDate(tm.clock().Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(tm.clock()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify checks signature and expiration and returns the asserted
// identity. Failures are reported as ErrTokenMalformed,
// ErrTokenSignatureInvalid or ErrTokenExpired; an expired token is a
// distinct condition, never a parse failure. A token inspected exactly at
// its expiration instant counts as expired.
func (tm *TokenManager) Verify(tokenStr string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.clock))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return domain.Identity{}, ErrTokenMalformed
		default:
			return domain.Identity{}, ErrTokenSignatureInvalid
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Identity{}, ErrTokenSignatureInvalid
	}
	return domain.Identity{Username: claims.Username, Role: claims.Role}, nil
}
