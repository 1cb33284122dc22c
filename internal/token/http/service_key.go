package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// RequireServiceKey rejects requests whose X-Service-Key header does not
// match key. An empty key disables the check.
func RequireServiceKey(key string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cryptox.EqualSecret(r.Header.Get(authsdk.ServiceKeyHeader), key) {
				slogx.FromContext(r.Context()).Warn("service key rejected")
				httpx.WriteError(w, http.StatusUnauthorized, authsdk.MsgInvalidServiceKey)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
