package authsdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
)

// RemoteVerifier verifies access tokens by asking the token service. It
// satisfies httpx.TokenVerifier.
type RemoteVerifier struct {
	Client  *Client
	Revoked jwtx.RevocationList // Optional
}

// NewRemoteVerifier wraps c.
func NewRemoteVerifier(c *Client) *RemoteVerifier {
	return &RemoteVerifier{Client: c}
}

// VerifyAccess returns the claims reported by the token service. Rejections
// keep their jwtx classification; everything else wraps ErrUnavailable.
func (v *RemoteVerifier) VerifyAccess(ctx context.Context, token string) (jwtx.Claims, error) {
	res, err := v.Client.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, jwtx.ErrInvalid) || errors.Is(err, jwtx.ErrExpired) || errors.Is(err, ErrUnavailable) {
			return jwtx.Claims{}, err
		}
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if !res.Valid || res.ID == "" {
		return jwtx.Claims{}, jwtx.ErrInvalid
	}

	claims := jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: res.ID,
			ID:      res.JTI,
		},
		Username: res.Username,
		Email:    res.Email,
	}
	if res.Exp > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Unix(res.Exp, 0))
	}

	if v.Revoked != nil && claims.ID != "" {
		revoked, err := v.Revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return jwtx.Claims{}, fmt.Errorf("authsdk: revocation lookup: %w", err)
		}
		if revoked {
			return jwtx.Claims{}, jwtx.ErrRevoked
		}
	}
	return claims, nil
}
