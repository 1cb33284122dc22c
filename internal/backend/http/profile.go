package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/folio/internal/backend/cdn"
	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/aussiebroadwan/folio/internal/backend/service"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type MeHandler struct {
	Profile *service.ProfileService
}

// ServeHTTP returns the caller's profile.
//
//	@Summary		Current user
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserView
//	@Failure		401	{object}	httpx.ErrorResponse	"No token provided or Invalid or expired token"
//	@Failure		404	{object}	httpx.ErrorResponse	"User not found"
//	@Router			/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, err := h.Profile.Me(r.Context(), httpx.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "Profile lookup")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, newUserView(u))
}

type UpdateProfileHandler struct {
	Profile *service.ProfileService
}

// ServeHTTP updates the editable part of the caller's profile. Unknown
// fields, including password, email and username, are ignored.
//
//	@Summary		Update profile
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		domain.ProfilePatch	true	"Fields to change"
//	@Success		200		{object}	ProfileResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"A broken field rule"
//	@Failure		401		{object}	httpx.ErrorResponse	"No token provided or Invalid or expired token"
//	@Failure		404		{object}	httpx.ErrorResponse	"User not found"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/auth/profile [put].
func (h *UpdateProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProfilePatch
	if err := httpx.DecodeJSON(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	u, err := h.Profile.UpdateProfile(r.Context(), httpx.UserIDFromContext(r.Context()), patch)
	if err != nil {
		writeServiceError(w, r, err, "Profile update")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{Message: MsgProfileSaved, User: newUserView(u)})
}

// multipartOverhead is the room left for part headers and boundaries on top
// of the image itself.
const multipartOverhead = 64 << 10

type AvatarHandler struct {
	Profile  *service.ProfileService
	MaxBytes int64
}

// ServeHTTP replaces the caller's avatar.
//
//	@Summary		Upload avatar
//	@Description	Accepts a GIF, JPEG or PNG in the multipart field "avatar". The previous avatar is removed.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			avatar	formData	file	true	"Image"
//	@Success		200		{object}	AvatarResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"Avatar file required or not an image"
//	@Failure		401		{object}	httpx.ErrorResponse	"No token provided or Invalid or expired token"
//	@Failure		503		{object}	httpx.ErrorResponse	"Avatar uploads are not available"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Router			/auth/avatar [post].
func (h *AvatarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxBytes
	if limit <= 0 {
		limit = cdn.DefaultMaxBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	file, _, err := r.FormFile("avatar")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeServiceError(w, r, &service.ValidationError{Field: "avatar", Rule: "image", Param: formatMiB(limit)}, "Avatar upload")
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, MsgAvatarRequired)
		return
	}
	defer file.Close()

	u, thumb, err := h.Profile.UploadAvatar(r.Context(), httpx.UserIDFromContext(r.Context()), file)
	if err != nil {
		writeServiceError(w, r, err, "Avatar upload")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, AvatarResponse{User: newUserView(u), ThumbnailURL: thumb})
}

func formatMiB(n int64) string {
	return strconv.FormatInt(n>>20, 10) + " MiB"
}
