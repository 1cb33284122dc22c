package authsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientIssue(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token/access", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "k3y", r.Header.Get(authsdk.ServiceKeyHeader))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req authsdk.IssueAccessRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.ID == "" {
			writeJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{Error: authsdk.MsgIDRequired})
			return
		}
		require.Equal(t, "alice", req.Username)
		writeJSON(w, http.StatusOK, authsdk.AccessTokenResponse{AccessToken: "acc", ExpiresIn: 900})
	})
	mux.HandleFunc("POST /token/refresh", func(w http.ResponseWriter, r *http.Request) {
		var req authsdk.IssueRefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, authsdk.RefreshTokenResponse{RefreshToken: "ref-" + req.ID, ExpiresIn: 604800})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := authsdk.NewClient(srv.URL+"/", authsdk.WithAPIKey("k3y"))

	t.Run("access", func(t *testing.T) {
		res, err := client.IssueAccess(t.Context(), jwtx.Principal{ID: "u1", Username: "alice", Email: "a@x.com"})
		require.NoError(t, err)
		require.Equal(t, "acc", res.AccessToken)
		require.EqualValues(t, 900, res.ExpiresIn)
	})

	t.Run("access without id", func(t *testing.T) {
		_, err := client.IssueAccess(t.Context(), jwtx.Principal{Username: "alice"})
		require.ErrorIs(t, err, authsdk.ErrBadRequest)

		var apiErr *authsdk.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, authsdk.MsgIDRequired, apiErr.Message)
	})

	t.Run("refresh", func(t *testing.T) {
		res, err := client.IssueRefresh(t.Context(), "u1")
		require.NoError(t, err)
		require.Equal(t, "ref-u1", res.RefreshToken)
		require.EqualValues(t, 604800, res.ExpiresIn)
	})
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
		not    error
	}{
		{"expired access", 401, `{"valid":false,"error":"Token expired"}`, jwtx.ErrExpired, jwtx.ErrInvalid},
		{"expired refresh", 401, `{"error":"Refresh token expired"}`, jwtx.ErrExpired, jwtx.ErrInvalid},
		{"invalid", 401, `{"valid":false,"error":"Invalid token"}`, jwtx.ErrInvalid, jwtx.ErrExpired},
		{"service key", 401, `{"error":"Invalid service key"}`, authsdk.ErrServiceKey, jwtx.ErrInvalid},
		{"server error", 500, `{"error":"boom"}`, authsdk.ErrUnavailable, jwtx.ErrInvalid},
		{"non json", 502, `<html>bad gateway</html>`, authsdk.ErrUnavailable, jwtx.ErrInvalid},
		{"non json 401", 401, `nope`, authsdk.ErrUnavailable, jwtx.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := authsdk.NewClient(srv.URL).Verify(t.Context(), "tok")
			require.ErrorIs(t, err, tt.want)
			require.NotErrorIs(t, err, tt.not)
		})
	}
}

func TestClientTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := authsdk.NewClient(srv.URL, authsdk.WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := client.RefreshAccess(t.Context(), "r", "alice", "a@x.com")
	require.ErrorIs(t, err, authsdk.ErrUnavailable)
	require.Less(t, time.Since(start), 5*time.Second)
}

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, id string) (bool, error) {
	return r[id], nil
}

func TestRemoteVerifier(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(10 * time.Minute).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			writeJSON(w, http.StatusOK, authsdk.VerifyResponse{
				Valid: true, ID: "u1", Username: "alice", Email: "a@x.com", JTI: "j1", Exp: exp,
			})
		case "Bearer hollow":
			writeJSON(w, http.StatusOK, authsdk.VerifyResponse{Valid: true})
		case "Bearer old":
			writeJSON(w, http.StatusUnauthorized, authsdk.VerifyResponse{Error: authsdk.MsgTokenExpired})
		default:
			writeJSON(w, http.StatusUnauthorized, authsdk.VerifyResponse{Error: authsdk.MsgInvalidToken})
		}
	}))
	t.Cleanup(srv.Close)

	v := authsdk.NewRemoteVerifier(authsdk.NewClient(srv.URL))

	t.Run("valid", func(t *testing.T) {
		claims, err := v.VerifyAccess(t.Context(), "good")
		require.NoError(t, err)
		require.Equal(t, jwtx.Principal{ID: "u1", Username: "alice", Email: "a@x.com"}, claims.Principal())
		require.Equal(t, "j1", claims.ID)
		require.Equal(t, exp, claims.ExpiresAt.Unix())
	})

	t.Run("expired", func(t *testing.T) {
		_, err := v.VerifyAccess(t.Context(), "old")
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := v.VerifyAccess(t.Context(), "forged")
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("valid without id", func(t *testing.T) {
		_, err := v.VerifyAccess(t.Context(), "hollow")
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("revoked", func(t *testing.T) {
		rv := &authsdk.RemoteVerifier{Client: authsdk.NewClient(srv.URL), Revoked: revokedSet{"j1": true}}
		_, err := rv.VerifyAccess(t.Context(), "good")
		require.ErrorIs(t, err, jwtx.ErrRevoked)
		require.ErrorIs(t, err, jwtx.ErrInvalid)
	})

	t.Run("unreachable", func(t *testing.T) {
		down := authsdk.NewRemoteVerifier(authsdk.NewClient("http://127.0.0.1:1", authsdk.WithTimeout(time.Second)))
		_, err := down.VerifyAccess(t.Context(), "good")
		require.ErrorIs(t, err, authsdk.ErrUnavailable)
		require.False(t, errors.Is(err, jwtx.ErrInvalid) || errors.Is(err, jwtx.ErrExpired))
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, authsdk.HealthResponse{Status: "ok", Version: "test"})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, authsdk.HealthResponse{
			Status: "degraded",
			Checks: map[string]string{"signer": "error: no secret"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := authsdk.NewClient(srv.URL)

	live, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := client.GetReadiness(t.Context())
	require.ErrorIs(t, err, authsdk.ErrUnavailable)
	require.Equal(t, "degraded", ready.Status)
	require.Contains(t, ready.Checks["signer"], "error")
}
