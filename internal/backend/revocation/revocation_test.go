package revocation_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/revocation"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRevoke(t *testing.T) {
	db, mock := redismock.NewClientMock()
	list := revocation.New(db)

	t.Run("stores the id with its remaining lifetime", func(t *testing.T) {
		mock.ExpectSet("folio:revoked:jti-1", "1", 10*time.Minute).SetVal("OK")
		require.NoError(t, list.Revoke(t.Context(), "jti-1", 10*time.Minute))
	})

	t.Run("expired tokens are skipped", func(t *testing.T) {
		require.NoError(t, list.Revoke(t.Context(), "jti-2", 0))
		require.NoError(t, list.Revoke(t.Context(), "", time.Minute))
	})

	t.Run("redis failure", func(t *testing.T) {
		mock.ExpectSet("folio:revoked:jti-3", "1", time.Minute).SetErr(redis.ErrClosed)
		require.ErrorIs(t, list.Revoke(t.Context(), "jti-3", time.Minute), redis.ErrClosed)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRevoked(t *testing.T) {
	db, mock := redismock.NewClientMock()
	list := revocation.New(db)

	mock.ExpectExists("folio:revoked:gone").SetVal(1)
	revoked, err := list.IsRevoked(t.Context(), "gone")
	require.NoError(t, err)
	require.True(t, revoked)

	mock.ExpectExists("folio:revoked:live").SetVal(0)
	revoked, err = list.IsRevoked(t.Context(), "live")
	require.NoError(t, err)
	require.False(t, revoked)

	mock.ExpectExists("folio:revoked:boom").SetErr(redis.ErrClosed)
	_, err = list.IsRevoked(t.Context(), "boom")
	require.ErrorIs(t, err, redis.ErrClosed)

	revoked, err = list.IsRevoked(t.Context(), "")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConnect(t *testing.T) {
	_, _, err := revocation.Connect("not a url")
	require.Error(t, err)

	list, client, err := revocation.Connect("redis://localhost:6379/2")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Equal(t, 2, client.Options().DB)
	require.NoError(t, client.Close())
}
