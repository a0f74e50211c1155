package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

const (
	// SessionCookieName carries the session token for browser clients.
	SessionCookieName = "tasks_session"

	loginURL = "/v1/login"
)

type AuthHandler struct {
	CredentialService *service.CredentialService
	SessionService    *service.SessionService
	CookieSecure      bool
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create an account. Emails are unique case-insensitively; usernames are unique as typed.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username			formData	string					true	"3 to 20 characters"
//	@Param			email				formData	string					true	"Email address"
//	@Param			password			formData	string					true	"At least 6 characters"
//	@Param			confirm_password	formData	string					true	"Must equal password"
//	@Success		201					{object}	tasksdk.UserResponse
//	@Failure		400					{object}	tasksdk.ErrorResponse	"validation_error with fields"
//	@Failure		409					{object}	tasksdk.ErrorResponse	"duplicate_email or duplicate_username"
//	@Failure		429					{object}	tasksdk.ErrorResponse
//	@Router			/v1/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badForm(w)
		return
	}

	form := parseRegisterForm(r)
	if err := form.Validate(); err != nil {
		writeFormErrors(w, err)
		return
	}

	user, err := h.CredentialService.Register(r.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Open a session. The token is returned and also set as the tasks_session cookie.
//	@Description	Unknown emails and wrong passwords are indistinguishable.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			email		formData	string	true	"Email address"
//	@Param			password	formData	string	true	"Password"
//	@Success		200			{object}	tasksdk.LoginResponse
//	@Failure		400			{object}	tasksdk.ErrorResponse
//	@Failure		401			{object}	tasksdk.ErrorResponse	"invalid_credentials"
//	@Failure		429			{object}	tasksdk.ErrorResponse
//	@Router			/v1/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badForm(w)
		return
	}

	form := parseLoginForm(r)
	if err := form.Validate(); err != nil {
		writeFormErrors(w, err)
		return
	}

	sess, token, err := h.SessionService.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, tasksdk.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   sess.ExpiresAt,
		UserID:      sess.UserID,
		SessionID:   sess.ID,
	})
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	End the current session, if any, and clear the cookie. Always succeeds.
//	@Tags			Auth
//	@Success		204
//	@Failure		500	{object}	tasksdk.ErrorResponse
//	@Router			/v1/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := httpx.TokenFromRequest(r, SessionCookieName)
	if err := h.SessionService.Logout(r.Context(), token); err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
