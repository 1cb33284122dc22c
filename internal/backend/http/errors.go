package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/backend/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// Client facing messages.
const (
	MsgInvalidBody         = "Invalid request body"
	MsgMissingFields       = "Missing required fields"
	MsgDuplicateIdentity   = "Username or email already in use"
	MsgMissingCredentials  = "Email and password required"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgNoRefreshToken      = "No refresh token provided"
	MsgInvalidRefreshToken = "Invalid refresh token"
	MsgUserNotFound        = "User not found"
	MsgAvatarRequired      = "Avatar file required"
	MsgAvatarsDisabled     = "Avatar uploads are not available"

	MsgRegistered   = "User registered successfully"
	MsgLoggedIn     = "Login successful"
	MsgLoggedOut    = "Logged out successfully"
	MsgProfileSaved = "Profile updated"
)

// writeServiceError maps service errors onto responses. Anything
// unrecognised is a 500 naming the failed operation and the request id.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrMissingFields):
		httpx.WriteError(w, http.StatusBadRequest, MsgMissingFields)
	case errors.Is(err, service.ErrDuplicateIdentity):
		httpx.WriteError(w, http.StatusBadRequest, MsgDuplicateIdentity)
	case errors.Is(err, service.ErrMissingCredentials):
		httpx.WriteError(w, http.StatusBadRequest, MsgMissingCredentials)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, service.ErrInvalidRefreshToken):
		httpx.WriteError(w, http.StatusUnauthorized, MsgInvalidRefreshToken)
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, MsgUserNotFound)
	case errors.Is(err, service.ErrAvatarsDisabled):
		httpx.WriteError(w, http.StatusServiceUnavailable, MsgAvatarsDisabled)
	default:
		writeInternal(w, r, err, op)
	}
}

func writeInternal(w http.ResponseWriter, r *http.Request, err error, op string) {
	ctx := r.Context()
	slogx.FromContext(ctx).Error(op+" failed", "err", err)
	httpx.WriteErrorDetails(w, http.StatusInternalServerError, op+" failed", "request "+slogx.RequestID(ctx))
}
