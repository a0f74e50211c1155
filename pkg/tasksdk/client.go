package tasksdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a tasks service. It performs anonymous operations and
// creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	data := url.Values{
		"username":         {req.Username},
		"email":            {req.Email},
		"password":         {req.Password},
		"confirm_password": {req.ConfirmPassword},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/register", "",
		strings.NewReader(data.Encode()),
		map[string]string{"Content-Type": formContentType},
	)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login opens a session with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	data := url.Values{
		"email":    {email},
		"password": {password},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/login", "",
		strings.NewReader(data.Encode()),
		map[string]string{"Content-Type": formContentType},
	)
	if err != nil {
		return nil, err
	}

	var login LoginResponse
	if err := decodeJSON(resp, &login, http.StatusOK); err != nil {
		return nil, err
	}
	return c.NewSession(login.AccessToken), nil
}

// NewSession wraps an existing session token.
func (c *Client) NewSession(token string) *Session {
	return &Session{client: c, token: token}
}

// Livez calls the liveness probe.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readyz calls the readiness probe. A degraded service returns an
// *APIError with status 503.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
