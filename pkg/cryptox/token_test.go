package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("test-token-1")
	fp1b := FingerprintToken("test-token-1")
	fp2 := FingerprintToken("test-token-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2, "different tokens should have different fingerprints")
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}

func TestEqualSecret(t *testing.T) {
	require.True(t, EqualSecret("s3cret", "s3cret"))
	require.False(t, EqualSecret("s3cret", "s3cre"))
	require.False(t, EqualSecret("", "s3cret"))
	require.True(t, EqualSecret("", ""))
}
