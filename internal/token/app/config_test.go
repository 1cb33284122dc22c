package app

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DOTENV_PATH", "")
	t.Setenv("ACCESS_TOKEN_SECRET", strings.Repeat("a", 32))
	t.Setenv("REFRESH_TOKEN_SECRET", strings.Repeat("r", 32))
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 4000, cfg.Port)
	require.Equal(t, "folio-token", cfg.Issuer)
	require.Empty(t, cfg.ServiceKey)
}

func TestConfigValidate(t *testing.T) {
	good := Config{
		AccessSecret:  strings.Repeat("a", 32),
		RefreshSecret: strings.Repeat("r", 32),
		Port:          4000,
	}
	require.NoError(t, good.Validate())

	missing := good
	missing.RefreshSecret = ""
	require.Error(t, missing.Validate())

	short := good
	short.AccessSecret = "short"
	require.ErrorIs(t, short.Validate(), jwtx.ErrWeakSecret)

	shared := good
	shared.RefreshSecret = shared.AccessSecret
	require.ErrorIs(t, shared.Validate(), jwtx.ErrSharedSecret)
}
