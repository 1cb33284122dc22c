package jwtx

import (
	"context"
	"fmt"
)

// RevocationList reports whether a token id has been revoked before its
// natural expiry. Implementations must be safe for concurrent use.
type RevocationList interface {
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// LocalVerifier checks access tokens in-process with the shared access secret.
// When a RevocationList is set it is consulted after the signature and expiry
// checks pass.
type LocalVerifier struct {
	Verifier Verifier
	Revoked  RevocationList // Optional
}

// NewLocalVerifier builds a LocalVerifier for the access secret.
func NewLocalVerifier(accessSecret []byte, opts VerifyOptions, revoked RevocationList) (*LocalVerifier, error) {
	v, err := NewHMACVerifier(accessSecret, opts)
	if err != nil {
		return nil, err
	}
	return &LocalVerifier{Verifier: v, Revoked: revoked}, nil
}

// VerifyAccess returns the verified claims of an access token.
func (l *LocalVerifier) VerifyAccess(ctx context.Context, token string) (Claims, error) {
	claims, err := l.Verifier.Verify(token)
	if err != nil {
		return Claims{}, err
	}

	if l.Revoked != nil && claims.ID != "" {
		revoked, err := l.Revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return Claims{}, fmt.Errorf("jwtx: revocation lookup: %w", err)
		}
		if revoked {
			return Claims{}, ErrRevoked
		}
	}

	return claims, nil
}
