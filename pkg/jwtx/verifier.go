package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Verification failures fall in exactly two families. ErrExpired means the
// signature checked out but exp has passed. Everything else wraps ErrInvalid,
// including a token signed with the other class's secret.
var (
	ErrInvalid = errors.New("jwtx: invalid token")
	ErrExpired = errors.New("jwtx: token expired")

	ErrMalformed      = fmt.Errorf("%w: malformed", ErrInvalid)
	ErrInvalidSig     = fmt.Errorf("%w: signature mismatch", ErrInvalid)
	ErrIssuer         = fmt.Errorf("%w: issuer mismatch", ErrInvalid)
	ErrMissingSubject = fmt.Errorf("%w: missing subject", ErrInvalid)
	ErrMissingExpiry  = fmt.Errorf("%w: missing expiry", ErrInvalid)
	ErrRevoked        = fmt.Errorf("%w: revoked", ErrInvalid)
)

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Leeway allows small clock skew when validating exp.
	Leeway time.Duration

	// Now overrides the clock, mostly for tests. Defaults to time.Now.
	Now func() time.Time
}

// HMACVerifier validates HS256 tokens signed with a single secret class.
type HMACVerifier struct {
	secret []byte
	opts   VerifyOptions
}

// NewHMACVerifier creates a verifier bound to one secret.
func NewHMACVerifier(secret []byte, opts VerifyOptions) (*HMACVerifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &HMACVerifier{secret: secret, opts: opts}, nil
}

// Verify checks the signature first and only then looks at the claims, so an
// expired token with a forged signature is reported as invalid.
func (v *HMACVerifier) Verify(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrMalformed
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidSig, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if claims.Subject == "" {
		return Claims{}, ErrMissingSubject
	}
	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.opts.Now(), v.opts.Leeway); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
