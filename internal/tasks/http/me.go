package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/aussiebroadwan/tasks/pkg/validx"
)

// DefaultMaxUploadBytes caps profile picture uploads.
const DefaultMaxUploadBytes = 5 << 20

type MeHandler struct {
	UserService       *service.UserService
	CredentialService *service.CredentialService
	SessionService    *service.SessionService
	ProfileService    *service.ProfileService
	MaxUploadBytes    int64
}

// HandleGet godoc
//
//	@Summary		Current user
//	@Description	Profile of the logged-in user.
//	@Tags			Me
//	@Produce		json
//	@Success		200	{object}	tasksdk.UserResponse
//	@Failure		401	{object}	tasksdk.ErrorResponse	"unauthenticated, with login_url"
//	@Security		BearerAuth
//	@Router			/v1/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := httpx.IdentityFromContext(r.Context())

	user, err := h.UserService.GetUser(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Verify the current password, set a new one and end every other session of the user.
//	@Tags			Me
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			current_password	formData	string	true	"Current password"
//	@Param			new_password		formData	string	true	"At least 6 characters"
//	@Param			confirm_password	formData	string	true	"Must equal new_password"
//	@Success		200					{object}	tasksdk.PasswordChangeResponse
//	@Failure		400					{object}	tasksdk.ErrorResponse
//	@Failure		401					{object}	tasksdk.ErrorResponse	"invalid_credentials or unauthenticated"
//	@Security		BearerAuth
//	@Router			/v1/me/password [post].
func (h *MeHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := httpx.IdentityFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		badForm(w)
		return
	}
	form := parsePasswordForm(r)
	if err := form.Validate(); err != nil {
		writeFormErrors(w, err)
		return
	}

	if err := h.CredentialService.ChangePassword(ctx, id.UserID, form.CurrentPassword, form.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	revoked, err := h.SessionService.RevokeOtherSessions(ctx, domain.Principal{
		UserID:    id.UserID,
		Username:  id.Username,
		SessionID: id.SessionID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tasksdk.PasswordChangeResponse{RevokedSessions: revoked})
}

// HandleUploadPicture godoc
//
//	@Summary		Upload profile picture
//	@Description	Store a jpg, jpeg, png or gif and make it the user's profile picture.
//	@Tags			Me
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			profile_pic	formData	file	true	"Image file"
//	@Success		200			{object}	tasksdk.ProfilePictureResponse
//	@Failure		400			{object}	tasksdk.ErrorResponse	"validation_error"
//	@Failure		413			{object}	tasksdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/me/profile-picture [post].
func (h *MeHandler) HandleUploadPicture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := httpx.IdentityFromContext(ctx)

	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	if r.ContentLength > limit {
		tooLarge(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			tooLarge(w)
			return
		}
		badForm(w)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("profile_pic")
	if errors.Is(err, http.ErrMissingFile) {
		writeFormErrors(w, validx.Errors{{Field: "profile_pic", Reason: validx.ReasonRequired}})
		return
	}
	if err != nil {
		badForm(w)
		return
	}
	defer file.Close()

	ref, err := h.ProfileService.UploadProfilePicture(ctx, id.UserID, header.Filename, file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tasksdk.ProfilePictureResponse{ProfilePic: ref})
}

func tooLarge(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusRequestEntityTooLarge, tasksdk.ErrorCodeInvalidRequest, "upload too large")
}
