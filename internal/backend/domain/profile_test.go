package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewUserDefaults(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	u := domain.NewUser("  Alice ", "Alice@X.com", "hash", " Alice A. ", now)

	require.Equal(t, "alice", u.Username)
	require.Equal(t, "alice@x.com", u.Email)
	require.Equal(t, "Alice A.", u.DisplayName)
	require.Equal(t, domain.DefaultTagline, u.Tagline)
	require.Equal(t, domain.PortfolioSettings{DefaultColumns: 2, DefaultGap: 20, Theme: "light"}, u.PortfolioSettings)
	require.True(t, u.IsActive)
	require.Equal(t, now, u.CreatedAt)
}

func TestProfilePatchMerge(t *testing.T) {
	current := domain.NewUser("alice", "a@x.com", "hash", "Alice", time.Now())
	current.SocialLinks.Instagram = "@alice"

	t.Run("nested fields merge over current values", func(t *testing.T) {
		up := domain.ProfilePatch{
			SocialLinks:       &domain.SocialLinksPatch{Website: ptr("https://alice.dev")},
			PortfolioSettings: &domain.PortfolioSettingsPatch{Theme: ptr("dark")},
		}.Merge(current)

		require.Nil(t, up.DisplayName)
		require.Equal(t, domain.SocialLinks{Instagram: "@alice", Website: "https://alice.dev"}, *up.SocialLinks)
		require.Equal(t, domain.PortfolioSettings{DefaultColumns: 2, DefaultGap: 20, Theme: "dark"}, *up.PortfolioSettings)
	})

	t.Run("empty patch changes nothing", func(t *testing.T) {
		require.True(t, domain.ProfilePatch{}.Merge(current).IsEmpty())
	})

	t.Run("apply", func(t *testing.T) {
		u := current
		domain.ProfileUpdate{
			DisplayName: ptr("New"),
			Avatar:      &domain.Avatar{URL: "https://cdn/x", PublicID: "avatars/x"},
		}.Apply(&u)

		require.Equal(t, "New", u.DisplayName)
		require.Equal(t, "avatars/x", u.Avatar.PublicID)
		require.Equal(t, current.Tagline, u.Tagline)
	})
}
