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

type RefreshAccessHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP exchanges a refresh token for a new access token.
//
//	@Summary		Refresh access token
//	@Description	Verifies the refresh token and mints an access token for its subject with the supplied username and email.
//	@Tags			Tokens
//	@Security		ServiceKey
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshAccessRequest	true	"Refresh token and current identity"
//	@Success		200		{object}	authsdk.AccessTokenResponse
//	@Failure		401		{object}	authsdk.ErrorResponse	"Refresh token required, Refresh token expired or Invalid refresh token"
//	@Router			/token/refresh-access [post].
func (h *RefreshAccessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req authsdk.RefreshAccessRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusUnauthorized, authsdk.MsgRefreshTokenRequired)
		return
	}

	issued, err := h.TokenService.RefreshAccessToken(req.RefreshToken, req.Username, req.Email)
	switch {
	case err == nil:
	case errors.Is(err, jwtx.ErrExpired):
		httpx.WriteError(w, http.StatusUnauthorized, authsdk.MsgRefreshTokenExpired)
		return
	case errors.Is(err, jwtx.ErrInvalid), errors.Is(err, service.ErrMissingID):
		log.Debug("refresh token rejected", "err", err)
		httpx.WriteError(w, http.StatusUnauthorized, authsdk.MsgInvalidRefreshToken)
		return
	default:
		log.Error("token signing failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Failed to generate access token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AccessTokenResponse{
		AccessToken: issued.Token,
		ExpiresIn:   issued.ExpiresIn,
	})
}
