package jwtx_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "folio-token"

var testSecrets = jwtx.Secrets{
	Access:  []byte("access-secret-access-secret-0123456789"),
	Refresh: []byte("refresh-secret-refresh-secret-0123456789"),
}

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustSigner(t *testing.T, secret []byte) *jwtx.HMACSigner {
	t.Helper()
	s, err := jwtx.NewHMACSigner(secret)
	require.NoError(t, err)
	return s
}

func mustVerifier(t *testing.T, secret []byte, now time.Time) *jwtx.HMACVerifier {
	t.Helper()
	v, err := jwtx.NewHMACVerifier(secret, jwtx.VerifyOptions{Issuer: exampleIssuer, Now: fixedClock(now)})
	require.NoError(t, err)
	return v
}

func TestHMACSignAndVerify(t *testing.T) {
	now := time.Now().UTC()
	p := jwtx.Principal{ID: "user-123", Username: "alice", Email: "alice@example.com"}

	claims := jwtx.NewAccessClaims(p, jwtx.DefaultAccessTokenTTL, exampleIssuer, now)
	token, err := mustSigner(t, testSecrets.Access).Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := mustVerifier(t, testSecrets.Access, now).Verify(token)
	require.NoError(t, err)
	require.Equal(t, p, parsed.Principal())
	require.Equal(t, claims.ID, parsed.ID)
	require.Equal(t, exampleIssuer, parsed.Issuer)
}

func TestHMACVerifyExpiry(t *testing.T) {
	issued := time.Unix(1_700_000_000, 0).UTC()
	claims := jwtx.NewAccessClaims(jwtx.Principal{ID: "u1"}, jwtx.DefaultAccessTokenTTL, exampleIssuer, issued)
	token, err := mustSigner(t, testSecrets.Access).Sign(claims)
	require.NoError(t, err)

	t.Run("just before expiry", func(t *testing.T) {
		_, err := mustVerifier(t, testSecrets.Access, issued.Add(14*time.Minute)).Verify(token)
		require.NoError(t, err)
	})

	t.Run("after expiry is expired, not invalid", func(t *testing.T) {
		_, err := mustVerifier(t, testSecrets.Access, issued.Add(16*time.Minute)).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
		require.NotErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("long after expiry", func(t *testing.T) {
		_, err := mustVerifier(t, testSecrets.Access, issued.Add(365*24*time.Hour)).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}

func TestHMACVerifyWrongClass(t *testing.T) {
	now := time.Now().UTC()

	access, err := mustSigner(t, testSecrets.Access).
		Sign(jwtx.NewAccessClaims(jwtx.Principal{ID: "u1"}, time.Minute, exampleIssuer, now))
	require.NoError(t, err)

	refresh, err := mustSigner(t, testSecrets.Refresh).
		Sign(jwtx.NewRefreshClaims("u1", time.Minute, exampleIssuer, now))
	require.NoError(t, err)

	t.Run("refresh token against access secret", func(t *testing.T) {
		_, err := mustVerifier(t, testSecrets.Access, now).Verify(refresh)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
		require.NotErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("access token against refresh secret", func(t *testing.T) {
		_, err := mustVerifier(t, testSecrets.Refresh, now).Verify(access)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("expired token with wrong secret is invalid", func(t *testing.T) {
		_, err := mustVerifier(t, testSecrets.Refresh, now.Add(time.Hour)).Verify(access)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
		require.NotErrorIs(t, err, jwtx.ErrExpired)
	})
}

func TestHMACVerifyRejects(t *testing.T) {
	now := time.Now().UTC()
	v := mustVerifier(t, testSecrets.Access, now)

	valid, err := mustSigner(t, testSecrets.Access).
		Sign(jwtx.NewAccessClaims(jwtx.Principal{ID: "u1"}, time.Minute, exampleIssuer, now))
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := v.Verify("")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not-a-jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(valid, ".")
		require.Len(t, parts, 3)
		forged := jwtx.NewAccessClaims(jwtx.Principal{ID: "admin"}, time.Minute, exampleIssuer, now)
		other, err := mustSigner(t, []byte("some-other-secret-some-other-secret!!")).Sign(forged)
		require.NoError(t, err)
		tampered := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

		_, err = v.Verify(tampered)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("alg none", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(jwtx.Principal{ID: "u1"}, time.Minute, exampleIssuer, now)
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = v.Verify(unsigned)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(jwtx.Principal{}, time.Minute, exampleIssuer, now)
		token, err := mustSigner(t, testSecrets.Access).Sign(claims)
		require.NoError(t, err)

		_, err = v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrMissingSubject)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(jwtx.Principal{ID: "u1"}, time.Minute, "elsewhere", now)
		token, err := mustSigner(t, testSecrets.Access).Sign(claims)
		require.NoError(t, err)

		_, err = v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}

func TestSecretsValidate(t *testing.T) {
	require.NoError(t, testSecrets.Validate())

	short := jwtx.Secrets{Access: []byte("short"), Refresh: testSecrets.Refresh}
	require.ErrorIs(t, short.Validate(), jwtx.ErrWeakSecret)

	same := jwtx.Secrets{Access: testSecrets.Access, Refresh: testSecrets.Access}
	require.ErrorIs(t, same.Validate(), jwtx.ErrSharedSecret)

	require.Equal(t, testSecrets.Refresh, testSecrets.For(jwtx.ClassRefresh))
	require.Equal(t, "access", jwtx.ClassAccess.String())

	_, err := jwtx.NewHMACSigner([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

type revocations map[string]bool

func (r revocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if id == "boom" {
		return false, errors.New("backend down")
	}
	return r[id], nil
}

func TestLocalVerifier(t *testing.T) {
	now := time.Now().UTC()
	signer := mustSigner(t, testSecrets.Access)

	claims := jwtx.NewAccessClaims(
		jwtx.Principal{ID: "u1", Username: "alice", Email: "a@x.com"},
		time.Minute, exampleIssuer, now,
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	t.Run("accepts valid token", func(t *testing.T) {
		lv, err := jwtx.NewLocalVerifier(testSecrets.Access, jwtx.VerifyOptions{Issuer: exampleIssuer}, revocations{})
		require.NoError(t, err)

		got, err := lv.VerifyAccess(t.Context(), token)
		require.NoError(t, err)
		require.Equal(t, "alice", got.Username)
	})

	t.Run("rejects revoked token", func(t *testing.T) {
		lv, err := jwtx.NewLocalVerifier(testSecrets.Access, jwtx.VerifyOptions{}, revocations{claims.ID: true})
		require.NoError(t, err)

		_, err = lv.VerifyAccess(t.Context(), token)
		require.ErrorIs(t, err, jwtx.ErrRevoked)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("lookup failure is neither invalid nor expired", func(t *testing.T) {
		boom := jwtx.NewAccessClaims(jwtx.Principal{ID: "u1"}, time.Minute, exampleIssuer, now)
		boom.ID = "boom"
		tok, err := signer.Sign(boom)
		require.NoError(t, err)

		lv, err := jwtx.NewLocalVerifier(testSecrets.Access, jwtx.VerifyOptions{}, revocations{})
		require.NoError(t, err)

		_, err = lv.VerifyAccess(t.Context(), tok)
		require.Error(t, err)
		require.NotErrorIs(t, err, jwtx.ErrInvalid)
		require.NotErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("nil revocation list", func(t *testing.T) {
		lv, err := jwtx.NewLocalVerifier(testSecrets.Access, jwtx.VerifyOptions{}, nil)
		require.NoError(t, err)

		_, err = lv.VerifyAccess(t.Context(), token)
		require.NoError(t, err)
	})
}
