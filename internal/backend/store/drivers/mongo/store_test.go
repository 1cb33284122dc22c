package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/aussiebroadwan/folio/internal/backend/store"
	"github.com/aussiebroadwan/folio/internal/backend/store/drivers/mongo"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupMongo starts a throwaway MongoDB and returns a migrated store bound to
// a fresh database.
func setupMongo(t *testing.T) *mongo.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	s, err := mongo.NewStore(fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "folio_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.ApplyMigrations(ctx))
	return s
}

func ptr[T any](v T) *T { return &v }

func TestMongoStore(t *testing.T) {
	s := setupMongo(t)
	ctx := t.Context()

	created, err := s.Create(ctx, domain.NewUser("Alice", "Alice@X.com", "hash", "Alice", time.Now()))
	require.NoError(t, err)
	require.Len(t, created.ID, 24)
	require.Equal(t, "alice", created.Username)

	t.Run("find by email is case insensitive", func(t *testing.T) {
		u, err := s.FindByEmail(ctx, "ALICE@x.com")
		require.NoError(t, err)
		require.Equal(t, created.ID, u.ID)
		require.Equal(t, "hash", u.PasswordHash)
		require.Equal(t, domain.DefaultTagline, u.Tagline)
	})

	t.Run("find by id", func(t *testing.T) {
		u, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "alice@x.com", u.Email)

		_, err = s.FindByID(ctx, "not-an-object-id")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.FindByID(ctx, "000000000000000000000000")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicates", func(t *testing.T) {
		exists, err := s.ExistsByUsernameOrEmail(ctx, "ALICE", "someone@x.com")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = s.ExistsByUsernameOrEmail(ctx, "bob", "bob@x.com")
		require.NoError(t, err)
		require.False(t, exists)

		_, err = s.Create(ctx, domain.NewUser("other", "alice@x.com", "h", "Other", time.Now()))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := s.UpdateByID(ctx, created.ID, domain.ProfileUpdate{
			DisplayName:       ptr("New"),
			PortfolioSettings: &domain.PortfolioSettings{DefaultColumns: 4, DefaultGap: 8, Theme: domain.ThemeDark},
		})
		require.NoError(t, err)
		require.Equal(t, "New", updated.DisplayName)
		require.Equal(t, 4, updated.PortfolioSettings.DefaultColumns)
		require.Equal(t, "alice", updated.Username)

		_, err = s.UpdateByID(ctx, "000000000000000000000000", domain.ProfileUpdate{Bio: ptr("x")})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("password hash", func(t *testing.T) {
		require.NoError(t, s.UpdatePasswordHash(ctx, created.ID, "new-hash"))
		u, err := s.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "new-hash", u.PasswordHash)
	})
}
