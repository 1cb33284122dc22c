package service

import (
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

// ErrMissingID is returned when a mint request has no principal id.
var ErrMissingID = errors.New("id is required")

// IssuedToken is a freshly minted token and its lifetime in seconds.
type IssuedToken struct {
	Token     string
	ExpiresIn int64
}

// TokenService mints and verifies both token classes. It keeps no state
// besides its secrets, so a single instance is shared by all requests.
type TokenService struct {
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is the clock used for minting and verification.
	Now func() time.Time

	signers   map[jwtx.Class]jwtx.Signer
	verifiers map[jwtx.Class]jwtx.Verifier
}

// NewTokenService validates secrets and builds a service with the default
// lifetimes.
func NewTokenService(secrets jwtx.Secrets, issuer string) (*TokenService, error) {
	if err := secrets.Validate(); err != nil {
		return nil, err
	}

	s := &TokenService{
		Issuer:     issuer,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
		Now:        time.Now,
		signers:    make(map[jwtx.Class]jwtx.Signer, 2),
		verifiers:  make(map[jwtx.Class]jwtx.Verifier, 2),
	}

	for _, class := range []jwtx.Class{jwtx.ClassAccess, jwtx.ClassRefresh} {
		signer, err := jwtx.NewHMACSigner(secrets.For(class))
		if err != nil {
			return nil, err
		}
		verifier, err := jwtx.NewHMACVerifier(secrets.For(class), jwtx.VerifyOptions{
			Issuer: issuer,
			Now:    s.now,
		})
		if err != nil {
			return nil, err
		}
		s.signers[class] = signer
		s.verifiers[class] = verifier
	}

	return s, nil
}

func (s *TokenService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Ready reports whether both token classes can be minted.
func (s *TokenService) Ready() bool {
	return s != nil && len(s.signers) == 2 && len(s.verifiers) == 2
}

// IssueAccessToken mints an access token for p.
func (s *TokenService) IssueAccessToken(p jwtx.Principal) (IssuedToken, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return IssuedToken{}, ErrMissingID
	}

	claims := jwtx.NewAccessClaims(p, s.AccessTTL, s.Issuer, s.now())
	return s.sign(jwtx.ClassAccess, claims, s.AccessTTL)
}

// IssueRefreshToken mints a refresh token carrying only the principal id.
func (s *TokenService) IssueRefreshToken(id string) (IssuedToken, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return IssuedToken{}, ErrMissingID
	}

	claims := jwtx.NewRefreshClaims(id, s.RefreshTTL, s.Issuer, s.now())
	return s.sign(jwtx.ClassRefresh, claims, s.RefreshTTL)
}

// Verify checks token against the secret of class. The error is
// jwtx.ErrExpired for a genuine but expired token and wraps jwtx.ErrInvalid
// for everything else.
func (s *TokenService) Verify(token string, class jwtx.Class) (jwtx.Claims, error) {
	v, ok := s.verifiers[class]
	if !ok {
		return jwtx.Claims{}, jwtx.ErrInvalid
	}
	return v.Verify(strings.TrimSpace(token))
}

// RefreshAccessToken verifies refreshToken and mints a new access token for
// its subject. Username and email come from the caller, who has just read
// them from the user store; the refresh token carries neither.
func (s *TokenService) RefreshAccessToken(refreshToken, username, email string) (IssuedToken, error) {
	claims, err := s.Verify(refreshToken, jwtx.ClassRefresh)
	if err != nil {
		return IssuedToken{}, err
	}

	return s.IssueAccessToken(jwtx.Principal{
		ID:       claims.Subject,
		Username: username,
		Email:    email,
	})
}

func (s *TokenService) sign(class jwtx.Class, claims jwtx.Claims, ttl time.Duration) (IssuedToken, error) {
	token, err := s.signers[class].Sign(claims)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Token: token, ExpiresIn: int64(ttl / time.Second)}, nil
}
