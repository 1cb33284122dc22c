package sqlite_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/aussiebroadwan/folio/internal/backend/store"
	"github.com/aussiebroadwan/folio/internal/backend/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "folio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations(t.Context()))
	// Applying twice is a no-op
	require.NoError(t, s.ApplyMigrations(t.Context()))
	return s
}

func ptr[T any](v T) *T { return &v }

func TestCreateAndFind(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	created, err := s.Create(ctx, domain.NewUser("Alice", "Alice@X.com", "hash", "Alice", time.Now()))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice", created.Username)

	t.Run("by email is case insensitive", func(t *testing.T) {
		u, err := s.FindByEmail(ctx, "  ALICE@x.com ")
		require.NoError(t, err)
		require.Equal(t, created.ID, u.ID)
		require.Equal(t, "hash", u.PasswordHash)
		require.Equal(t, domain.DefaultTagline, u.Tagline)
		require.Equal(t, 2, u.PortfolioSettings.DefaultColumns)
		require.True(t, u.IsActive)
	})

	t.Run("by id", func(t *testing.T) {
		u, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "alice@x.com", u.Email)
		require.WithinDuration(t, created.CreatedAt, u.CreatedAt, time.Second)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.FindByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.FindByEmail(ctx, "nobody@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUniqueness(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	_, err := s.Create(ctx, domain.NewUser("alice", "Alice@X.com", "h", "Alice", time.Now()))
	require.NoError(t, err)

	exists, err := s.ExistsByUsernameOrEmail(ctx, "someone", "alice@x.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.ExistsByUsernameOrEmail(ctx, "ALICE", "other@x.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.ExistsByUsernameOrEmail(ctx, "bob", "bob@x.com")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = s.Create(ctx, domain.NewUser("other", "alice@x.com", "h", "Other", time.Now()))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Create(ctx, domain.NewUser("Alice", "new@x.com", "h", "Other", time.Now()))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestConcurrentCreateOneWins(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, domain.NewUser("race", "race@x.com", "h", "Race", time.Now()))
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
}

func TestUpdateByID(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	created, err := s.Create(ctx, domain.NewUser("alice", "a@x.com", "h", "Alice", time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	updated, err := s.UpdateByID(ctx, created.ID, domain.ProfileUpdate{
		DisplayName:       ptr("Alice Liddell"),
		Bio:               ptr("Through the looking glass"),
		Avatar:            &domain.Avatar{URL: "https://cdn.example.com/avatars/1.jpg", PublicID: "avatars/1.jpg"},
		SocialLinks:       &domain.SocialLinks{Instagram: "@alice"},
		PortfolioSettings: &domain.PortfolioSettings{DefaultColumns: 3, DefaultGap: 10, Theme: domain.ThemeDark},
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Liddell", updated.DisplayName)
	require.Equal(t, domain.DefaultTagline, updated.Tagline)
	require.Equal(t, "avatars/1.jpg", updated.Avatar.PublicID)
	require.Equal(t, "@alice", updated.SocialLinks.Instagram)
	require.Equal(t, domain.ThemeDark, updated.PortfolioSettings.Theme)
	require.Equal(t, "a@x.com", updated.Email)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = s.UpdateByID(ctx, "missing", domain.ProfileUpdate{Bio: ptr("x")})
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.UpdatePasswordHash(ctx, created.ID, "new-hash"))
	u, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", u.PasswordHash)

	require.ErrorIs(t, s.UpdatePasswordHash(ctx, "missing", "x"), store.ErrNotFound)
	require.NoError(t, s.Ping(ctx))
}
