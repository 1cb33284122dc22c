package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes shared by the token service and its clients.
const (
	// DefaultAccessTokenTTL is the lifetime of an access token.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the lifetime of a refresh token.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Principal is the authenticated identity carried by an access token.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Claims are the JWT claims for both token classes. The principal id always
// lives in the registered "sub" claim. Refresh tokens leave Username and
// Email empty so they are omitted from the payload.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// NewAccessClaims builds access-token claims for p issued at now.
func NewAccessClaims(p Principal, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(p.ID, ttl, issuer, now),
		Username:         p.Username,
		Email:            p.Email,
	}
}

// NewRefreshClaims builds refresh-token claims. Only the subject is embedded;
// identity attributes are re-resolved from the user store on refresh.
func NewRefreshClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{RegisteredClaims: registered(subject, ttl, issuer, now)}
}

func registered(subject string, ttl time.Duration, issuer string, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// Principal extracts the identity embedded in the claims.
func (c *Claims) Principal() Principal {
	return Principal{
		ID:       c.Subject,
		Username: c.Username,
		Email:    c.Email,
	}
}

// ExpiresIn returns the remaining lifetime at now, never negative.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry reports ErrExpired once now is past exp (plus leeway). A
// token without exp is treated as invalid; every token we mint carries one.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrMissingExpiry
	}

	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	return nil
}
