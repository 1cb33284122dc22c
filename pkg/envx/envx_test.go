package envx_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/pkg/envx"
	"github.com/stretchr/testify/require"
)

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FOLIO_TEST_A=from-file\nFOLIO_TEST_B=from-file\n"), 0o600))

	t.Setenv("FOLIO_TEST_A", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("FOLIO_TEST_B") })

	require.NoError(t, envx.LoadDotenv(path))
	require.Equal(t, "from-env", envx.String("FOLIO_TEST_A", ""))
	require.Equal(t, "from-file", envx.String("FOLIO_TEST_B", ""))

	require.NoError(t, envx.LoadDotenv(filepath.Join(dir, "missing.env")))
	require.NoError(t, envx.LoadDotenv(""))
}

func TestDefaults(t *testing.T) {
	t.Setenv("FOLIO_INT", "nope")
	t.Setenv("FOLIO_DUR", "45")
	t.Setenv("FOLIO_DUR2", "2m")
	t.Setenv("FOLIO_BLANK", "   ")

	require.Equal(t, 7, envx.Int("FOLIO_INT", 7))
	require.Equal(t, 45*time.Second, envx.Duration("FOLIO_DUR", 0))
	require.Equal(t, 2*time.Minute, envx.Duration("FOLIO_DUR2", 0))
	require.Equal(t, "fallback", envx.String("FOLIO_BLANK", "fallback"))
	require.EqualValues(t, 10, envx.Int64("FOLIO_UNSET", 10))
}
