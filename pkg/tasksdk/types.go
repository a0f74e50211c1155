package tasksdk

import "time"

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
	LoginURL         string            `json:"login_url,omitempty"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginResponse is returned by POST /v1/login. The same token is also set as
// the session cookie.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
	SessionID   string    `json:"session_id"`
}

// UserResponse is a user's public profile.
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	ProfilePic string    `json:"profile_pic"`
	CreatedAt  time.Time `json:"created_at"`
}

// TaskResponse is one task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskListResponse lists the caller's tasks in creation order.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// PasswordChangeResponse reports how many other sessions were ended by a
// password change.
type PasswordChangeResponse struct {
	RevokedSessions int64 `json:"revoked_sessions"`
}

// ProfilePictureResponse carries the stored asset reference: a filename
// served under /uploads/ or an absolute URL.
type ProfilePictureResponse struct {
	ProfilePic string `json:"profile_pic"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports individual dependency status in /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Storage  string `json:"storage"`
}
