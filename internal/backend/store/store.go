package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the user data access interface. Concrete drivers (mongo, sqlite)
// implement it. Usernames and emails are compared in their normalized form,
// see domain.NormalizeIdentity.
type Store interface {
	// FindByEmail returns the user with the given email, password hash
	// included.
	FindByEmail(ctx context.Context, email string) (domain.User, error)

	FindByID(ctx context.Context, id string) (domain.User, error)

	// ExistsByUsernameOrEmail reports whether either identity is taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// Create inserts u and returns it with the id the store assigned.
	// A duplicate username or email yields ErrAlreadyExists.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateByID writes the non-nil parts of up, bumps updated_at and returns
	// the stored user.
	UpdateByID(ctx context.Context, id string, up domain.ProfileUpdate) (domain.User, error)

	// UpdatePasswordHash replaces the stored hash, used when a legacy hash is
	// upgraded on login.
	UpdatePasswordHash(ctx context.Context, id, hash string) error

	ApplyMigrations(ctx context.Context) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	Close() error
}
