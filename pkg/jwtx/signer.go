package jwtx

import (
	"bytes"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret we accept (256 bits).
const MinSecretLength = 32

var (
	ErrWeakSecret   = errors.New("jwtx: secret must be at least 32 bytes")
	ErrSharedSecret = errors.New("jwtx: access and refresh secrets must differ")
)

// Class selects which secret a token is signed and verified with.
type Class int

const (
	ClassAccess Class = iota
	ClassRefresh
)

func (c Class) String() string {
	switch c {
	case ClassAccess:
		return "access"
	case ClassRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Secrets holds one HMAC secret per token class so a leaked refresh secret
// cannot forge access tokens and vice versa.
type Secrets struct {
	Access  []byte
	Refresh []byte
}

// Validate enforces minimum length and distinct secrets.
func (s Secrets) Validate() error {
	if len(s.Access) < MinSecretLength || len(s.Refresh) < MinSecretLength {
		return ErrWeakSecret
	}
	if bytes.Equal(s.Access, s.Refresh) {
		return ErrSharedSecret
	}
	return nil
}

// For returns the secret for class c.
func (s Secrets) For(c Class) []byte {
	if c == ClassRefresh {
		return s.Refresh
	}
	return s.Access
}

// Signer turns claims into a compact signed JWT.
type Signer interface {
	Sign(claims Claims) (string, error)
}

// HMACSigner signs HS256 tokens with a single secret.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner returns a signer for secret.
func NewHMACSigner(secret []byte) (*HMACSigner, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &HMACSigner{secret: secret}, nil
}

// Sign takes your claims and turns them into a signed JWT string.
func (s *HMACSigner) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
