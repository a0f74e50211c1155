package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
	"github.com/aussiebroadwan/tasks/pkg/validx"
)

// writeServiceError maps a service outcome onto a status code and error
// body. Infrastructure failures are logged and never described to the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error:            tasksdk.ErrorCodeValidation,
			ErrorDescription: "one or more fields are invalid",
			Fields:           verr.Fields.Map(),
		})
	case errors.Is(err, service.ErrDuplicateEmail):
		httpx.WriteError(w, http.StatusConflict, tasksdk.ErrorCodeDuplicateEmail, "email is already registered")
	case errors.Is(err, service.ErrDuplicateUsername):
		httpx.WriteError(w, http.StatusConflict, tasksdk.ErrorCodeDuplicateUsername, "username is already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, tasksdk.ErrorCodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorResponse{
			Error:            tasksdk.ErrorCodeUnauthenticated,
			ErrorDescription: "login required",
			LoginURL:         loginURL,
		})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, tasksdk.ErrorCodeForbidden, "not your task")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, tasksdk.ErrorCodeNotFound, "not found")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, tasksdk.ErrorCodeServerError, "internal server error")
	}
}

// writeFormErrors reports boundary validation failures in the same shape as
// service validation errors.
func writeFormErrors(w http.ResponseWriter, err error) {
	var errs validx.Errors
	if !errors.As(err, &errs) {
		httpx.WriteError(w, http.StatusBadRequest, tasksdk.ErrorCodeInvalidRequest, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
		Error:            tasksdk.ErrorCodeValidation,
		ErrorDescription: "one or more fields are invalid",
		Fields:           errs.Map(),
	})
}

func badForm(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, tasksdk.ErrorCodeInvalidRequest, "invalid form body")
}
