package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

const RefreshCookieName = "refreshToken"

// refreshCookie builds the refresh cookie. Setting and clearing must agree
// on every attribute or browsers keep the old one.
func refreshCookie(value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func setRefreshCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, refreshCookie(token, int(jwtx.DefaultRefreshTokenTTL.Seconds()), secure))
}

func clearRefreshCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, refreshCookie("", -1, secure))
}

// refreshTokenFrom returns the refresh cookie value, or "" when absent.
func refreshTokenFrom(r *http.Request) string {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
