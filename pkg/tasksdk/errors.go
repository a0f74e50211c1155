package tasksdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes sent by the service.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeDuplicateEmail     = "duplicate_email"
	ErrorCodeDuplicateUsername  = "duplicate_username"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
	ErrorCodeServerError        = "server_error"
)

// APIError is a decoded error response.
type APIError struct {
	StatusCode  int
	Code        string
	Description string

	// Fields maps rejected form fields to a reason, for validation errors.
	Fields map[string]string

	// LoginURL is set when the call needs a session.
	LoginURL string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError by code, so errors.Is(err, ErrForbidden)
// works regardless of description.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidRequest     = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeInvalidRequest}
	ErrValidation         = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeValidation}
	ErrDuplicateEmail     = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeDuplicateEmail}
	ErrDuplicateUsername  = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeDuplicateUsername}
	ErrInvalidCredentials = &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeInvalidCredentials}
	ErrUnauthenticated    = &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeUnauthenticated}
	ErrForbidden          = &APIError{StatusCode: http.StatusForbidden, Code: ErrorCodeForbidden}
	ErrNotFound           = &APIError{StatusCode: http.StatusNotFound, Code: ErrorCodeNotFound}
	ErrRateLimited        = &APIError{StatusCode: http.StatusTooManyRequests, Code: ErrorCodeRateLimited}
	ErrServerError        = &APIError{StatusCode: http.StatusInternalServerError, Code: ErrorCodeServerError}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Fields:      errResp.Fields,
			LoginURL:    errResp.LoginURL,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
