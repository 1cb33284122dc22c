package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/token/service"
	"github.com/aussiebroadwan/folio/pkg/authsdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

type VerifyHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP verifies an access token presented as a bearer token.
//
//	@Summary		Verify access token
//	@Description	Checks signature and expiry of the bearer access token and returns its principal.
//	@Tags			Tokens
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.VerifyResponse
//	@Failure		401	{object}	authsdk.VerifyResponse	"No token provided, Token expired or Invalid token"
//	@Router			/token/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := httpx.BearerToken(r)
	if raw == "" {
		writeInvalid(w, authsdk.MsgNoToken)
		return
	}

	claims, err := h.TokenService.Verify(raw, jwtx.ClassAccess)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("access token rejected", "err", err)
		if errors.Is(err, jwtx.ErrExpired) {
			writeInvalid(w, authsdk.MsgTokenExpired)
			return
		}
		writeInvalid(w, authsdk.MsgInvalidToken)
		return
	}

	res := authsdk.VerifyResponse{
		Valid:    true,
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
		JTI:      claims.ID,
	}
	if claims.ExpiresAt != nil {
		res.Exp = claims.ExpiresAt.Unix()
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

type VerifyRefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP verifies a refresh token from the Authorization header or the
// JSON body.
//
//	@Summary		Verify refresh token
//	@Description	Checks a refresh token and returns the principal id it was issued for.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyRefreshRequest	false	"Refresh token, when not sent as a bearer token"
//	@Success		200		{object}	authsdk.VerifyRefreshResponse
//	@Failure		401		{object}	authsdk.VerifyRefreshResponse	"No refresh token provided, Refresh token expired or Invalid refresh token"
//	@Router			/token/verify-refresh [post].
func (h *VerifyRefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := httpx.BearerToken(r)
	if raw == "" && r.ContentLength != 0 {
		var req authsdk.VerifyRefreshRequest
		if err := httpx.DecodeJSON(w, r, &req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		writeInvalid(w, authsdk.MsgNoRefreshToken)
		return
	}

	claims, err := h.TokenService.Verify(raw, jwtx.ClassRefresh)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("refresh token rejected", "err", err)
		if errors.Is(err, jwtx.ErrExpired) {
			writeInvalid(w, authsdk.MsgRefreshTokenExpired)
			return
		}
		writeInvalid(w, authsdk.MsgInvalidRefreshToken)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.VerifyRefreshResponse{Valid: true, ID: claims.Subject})
}

func writeInvalid(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	httpx.WriteJSON(w, http.StatusUnauthorized, authsdk.VerifyResponse{Valid: false, Error: msg})
}
