package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/aussiebroadwan/folio/internal/backend/store"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// TokenClient is the token service as seen from here. *authsdk.Client
// implements it.
type TokenClient interface {
	IssueAccess(ctx context.Context, p jwtx.Principal) (*authsdk.AccessTokenResponse, error)
	IssueRefresh(ctx context.Context, id string) (*authsdk.RefreshTokenResponse, error)
	VerifyRefresh(ctx context.Context, refreshToken string) (*authsdk.VerifyRefreshResponse, error)
	RefreshAccess(ctx context.Context, refreshToken, username, email string) (*authsdk.AccessTokenResponse, error)
}

// Revoker records revoked token ids. Refresh tokens are recorded by
// fingerprint, never in the clear.
type Revoker interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

type RegisterInput struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	User             domain.User
	AccessToken      string
	AccessExpiresIn  int64
	RefreshToken     string
	RefreshExpiresIn int64
}

type AuthService struct {
	Store  store.Store
	Tokens TokenClient

	// Revocations is optional; without it logout only clears the cookie.
	Revocations Revoker

	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// dummyHash is compared against when the email is unknown so both login
// failures take the same time.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("folio-timing-equalizer")
	if err != nil {
		return ""
	}
	return h
})

// Register creates the account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.Password == "" {
		return Session{}, ErrMissingFields
	}
	if err := check(in); err != nil {
		return Session{}, err
	}

	taken, err := s.Store.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return Session{}, fmt.Errorf("check identity: %w", err)
	}
	if taken {
		return Session{}, ErrDuplicateIdentity
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Store.Create(ctx, domain.NewUser(in.Username, in.Email, hash, in.DisplayName, s.now().UTC()))
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent registration
		return Session{}, ErrDuplicateIdentity
	}
	if err != nil {
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return s.openSession(ctx, user)
}

// Login checks the password and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}

	user, err := s.Store.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		_ = cryptox.VerifyPassword(password, dummyHash())
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("find user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Error("stored password hash unreadable", "user_id", user.ID, "err", err)
		}
		return Session{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return Session{}, ErrInvalidCredentials
	}

	if cryptox.IsLegacyHash(user.PasswordHash) {
		s.upgradeHash(ctx, user.ID, password)
	}

	return s.openSession(ctx, user)
}

// upgradeHash replaces a bcrypt hash with argon2id. Failure only delays the
// upgrade to the next login.
func (s *AuthService) upgradeHash(ctx context.Context, userID, password string) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err == nil {
		err = s.Store.UpdatePasswordHash(ctx, userID, hash)
	}
	if err != nil {
		log.Warn("legacy password hash upgrade failed", "user_id", userID, "err", err)
		return
	}
	log.Info("legacy password hash upgraded", "user_id", userID)
}

func (s *AuthService) openSession(ctx context.Context, user domain.User) (Session, error) {
	access, err := s.Tokens.IssueAccess(ctx, Principal(user))
	if err != nil {
		return Session{}, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.Tokens.IssueRefresh(ctx, user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue refresh token: %w", err)
	}

	return Session{
		User:             user,
		AccessToken:      access.AccessToken,
		AccessExpiresIn:  access.ExpiresIn,
		RefreshToken:     refresh.RefreshToken,
		RefreshExpiresIn: refresh.ExpiresIn,
	}, nil
}

// Refresh exchanges a refresh token for a new access token carrying the
// user's current username and email. Every failure is ErrInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*authsdk.AccessTokenResponse, error) {
	log := slogx.FromContext(ctx)

	verified, err := s.Tokens.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, authsdk.ErrUnavailable) {
			log.Error("token service unavailable during refresh", "err", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}

	if s.Revocations != nil {
		revoked, err := s.Revocations.IsRevoked(ctx, cryptox.FingerprintToken(refreshToken))
		if err != nil {
			log.Error("revocation lookup failed", "err", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: revoked", ErrInvalidRefreshToken)
		}
	}

	user, err := s.Store.FindByID(ctx, verified.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user inactive", ErrInvalidRefreshToken)
	}

	access, err := s.Tokens.RefreshAccess(ctx, refreshToken, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}
	return access, nil
}

// Logout revokes the access token in claims and, when given, the refresh
// token, each for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims jwtx.Claims, refreshToken string) error {
	if s.Revocations == nil {
		return nil
	}

	if err := s.Revocations.Revoke(ctx, claims.ID, claims.ExpiresIn(s.now())); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}

	if refreshToken != "" {
		// The refresh token is opaque here, so hold it for the longest
		// lifetime it can have.
		fp := cryptox.FingerprintToken(refreshToken)
		if err := s.Revocations.Revoke(ctx, fp, jwtx.DefaultRefreshTokenTTL); err != nil {
			return fmt.Errorf("revoke refresh token: %w", err)
		}
	}
	return nil
}

// Principal is the token identity of u.
func Principal(u domain.User) jwtx.Principal {
	return jwtx.Principal{ID: u.ID, Username: u.Username, Email: u.Email}
}
