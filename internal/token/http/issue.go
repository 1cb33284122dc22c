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

type IssueAccessHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP mints an access token.
//
//	@Summary		Issue access token
//	@Description	Mints a 15 minute access token for the given principal.
//	@Tags			Tokens
//	@Security		ServiceKey
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.IssueAccessRequest	true	"Principal"
//	@Success		200		{object}	authsdk.AccessTokenResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"id is required"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid service key"
//	@Failure		500		{object}	authsdk.ErrorResponse
//	@Router			/token/access [post].
func (h *IssueAccessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.IssueAccessRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, authsdk.MsgInvalidBody)
		return
	}

	issued, err := h.TokenService.IssueAccessToken(jwtx.Principal{
		ID:       req.ID,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		writeIssueError(w, r, err, "Failed to generate access token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AccessTokenResponse{
		AccessToken: issued.Token,
		ExpiresIn:   issued.ExpiresIn,
	})
}

type IssueRefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP mints a refresh token.
//
//	@Summary		Issue refresh token
//	@Description	Mints a 7 day refresh token. Only the principal id is embedded.
//	@Tags			Tokens
//	@Security		ServiceKey
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.IssueRefreshRequest	true	"Principal id"
//	@Success		200		{object}	authsdk.RefreshTokenResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"id is required"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid service key"
//	@Failure		500		{object}	authsdk.ErrorResponse
//	@Router			/token/refresh [post].
func (h *IssueRefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.IssueRefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, authsdk.MsgInvalidBody)
		return
	}

	issued, err := h.TokenService.IssueRefreshToken(req.ID)
	if err != nil {
		writeIssueError(w, r, err, "Failed to generate refresh token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.RefreshTokenResponse{
		RefreshToken: issued.Token,
		ExpiresIn:    issued.ExpiresIn,
	})
}

func writeIssueError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, service.ErrMissingID) {
		httpx.WriteError(w, http.StatusBadRequest, authsdk.MsgIDRequired)
		return
	}
	slogx.FromContext(r.Context()).Error("token signing failed", "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, msg)
}
