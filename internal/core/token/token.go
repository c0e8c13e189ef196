// Package token issues and validates the signed bearer tokens that prove a
// principal's identity between requests. Tokens are self-contained: validation
// needs no store lookup, only the signing secret. There is no revocation —
// a token stays valid until its expiry, even across logout or password change.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/task-api/internal/core/domain"
)

// Codec signs and verifies HS256 JWTs carrying a principal id.
type Codec struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewCodec returns a Codec using the given signing secret. The secret is
// injected here rather than read from a global so tests and rotation can use
// distinct secrets; rotating it invalidates every outstanding token.
func NewCodec(secret string, defaultTTL time.Duration) *Codec {
	if defaultTTL <= 0 {
		defaultTTL = 7 * 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue returns a signed token for principalID expiring after ttl.
// A ttl of 0 uses the codec's default.
func (c *Codec) Issue(principalID string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   principalID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate parses and verifies tokenString and returns the principal id and
// expiry it carries. A bad signature, an undecodable payload, a wrong signing
// method, and an expired token all return domain.ErrUnauthorized: callers
// must not be able to tell why a token was rejected.
func (c *Codec) Validate(tokenString string) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}
