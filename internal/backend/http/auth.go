package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/backend/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

type RegisterHandler struct {
	Auth          *service.AuthService
	SecureCookies bool
}

// ServeHTTP creates an account and opens a session.
//
//	@Summary		Register
//	@Description	Creates an account. Usernames and emails are unique regardless of case. The refresh token is set as an HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.RegisterInput	true	"New account"
//	@Success		201		{object}	AuthResponse
//	@Header			201		{string}	Set-Cookie	"refreshToken"
//	@Failure		400		{object}	httpx.ErrorResponse	"Missing required fields, Username or email already in use or a broken field rule"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	s, err := h.Auth.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, "Registration")
		return
	}

	setRefreshCookie(w, s.RefreshToken, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusCreated, AuthResponse{
		Message:     MsgRegistered,
		AccessToken: s.AccessToken,
		User:        newUserView(s.User),
	})
}

type LoginHandler struct {
	Auth          *service.AuthService
	SecureCookies bool
}

// ServeHTTP checks credentials and opens a session.
//
//	@Summary		Login
//	@Description	Unknown email and wrong password give the same answer.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	AuthResponse
//	@Header			200		{string}	Set-Cookie	"refreshToken"
//	@Failure		400		{object}	httpx.ErrorResponse	"Email and password required"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid credentials"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	s, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Login")
		return
	}

	setRefreshCookie(w, s.RefreshToken, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, AuthResponse{
		Message:     MsgLoggedIn,
		AccessToken: s.AccessToken,
		User:        newUserView(s.User),
	})
}

type RefreshHandler struct {
	Auth *service.AuthService
}

// ServeHTTP exchanges the refresh cookie for a new access token.
//
//	@Summary		Refresh access token
//	@Description	Reads the refreshToken cookie. The new access token carries the user's current username and email.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	RefreshResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"No refresh token provided or Invalid refresh token"
//	@Router			/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFrom(r)
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, MsgNoRefreshToken)
		return
	}

	access, err := h.Auth.Refresh(r.Context(), token)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("refresh rejected", "err", err)
		httpx.WriteError(w, http.StatusUnauthorized, MsgInvalidRefreshToken)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RefreshResponse{AccessToken: access.AccessToken})
}

type LogoutHandler struct {
	Auth          *service.AuthService
	SecureCookies bool
}

// ServeHTTP clears the refresh cookie and revokes both tokens.
//
//	@Summary		Logout
//	@Description	Clears the refresh cookie. When a revocation list is configured the access token and the refresh token stop working immediately.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.MessageResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"No token provided or Invalid or expired token"
//	@Failure		500	{object}	httpx.ErrorResponse	"Logout failed"
//	@Router			/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.MsgNoToken)
		return
	}

	clearRefreshCookie(w, h.SecureCookies)

	if err := h.Auth.Logout(r.Context(), claims, refreshTokenFrom(r)); err != nil {
		writeInternal(w, r, err, "Logout")
		return
	}

	slogx.FromContext(r.Context()).Info("user logged out", "user_id", claims.Subject)
	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: MsgLoggedOut})
}
