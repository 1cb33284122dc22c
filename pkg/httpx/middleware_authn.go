package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// Error messages returned by AuthnMiddleware.
const (
	MsgNoToken       = "No token provided"
	MsgInvalidToken  = "Invalid or expired token"
	MsgInternalError = "Internal server error"
)

// TokenVerifier verifies an access token and returns its claims. A failure
// wrapping jwtx.ErrInvalid or jwtx.ErrExpired is the caller's fault; any
// other error means the verifier itself could not decide.
type TokenVerifier interface {
	VerifyAccess(ctx context.Context, token string) (jwtx.Claims, error)
}

type authnConfig struct {
	bodyField string
}

// AuthnOption configures AuthnMiddleware.
type AuthnOption func(*authnConfig)

// WithBodyField also accepts the token from a top-level string field of a
// JSON request body when no Authorization header is present. The body is
// restored for the downstream handler.
func WithBodyField(name string) AuthnOption {
	return func(c *authnConfig) { c.bodyField = name }
}

// AuthnMiddleware requires a valid access token. It never lets a request
// through unless the verifier positively accepted the token.
func AuthnMiddleware(v TokenVerifier, opts ...AuthnOption) Middleware {
	var cfg authnConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := BearerToken(r)
			if raw == "" && cfg.bodyField != "" {
				raw = tokenFromBody(r, cfg.bodyField)
			}
			if raw == "" {
				writeBearerError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			claims, err := v.VerifyAccess(ctx, raw)
			switch {
			case err == nil:
			case errors.Is(err, jwtx.ErrInvalid), errors.Is(err, jwtx.ErrExpired):
				log.Debug("access token rejected", "err", err)
				writeBearerError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			default:
				log.Error("access token verification unavailable", "err", err)
				WriteError(w, http.StatusInternalServerError, MsgInternalError)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) < 7 || !strings.EqualFold(authz[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}

func tokenFromBody(r *http.Request, field string) string {
	if r.Body == nil || !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxJSONBody))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	var tok string
	if err := json.Unmarshal(fields[field], &tok); err != nil {
		return ""
	}
	return strings.TrimSpace(tok)
}

// RFC 6750-compliant error response for bearer auth, with a JSON body.
func writeBearerError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, code, msg)
}
