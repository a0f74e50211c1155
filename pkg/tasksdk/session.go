package tasksdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Session performs calls as a logged-in user.
type Session struct {
	client *Client
	token  string
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

// Logout ends the session server side. Calling it again is harmless.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/logout", s.token, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Me returns the logged-in user's profile.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/me", s.token, nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword sets a new password. Every other session of the user is
// ended; this one stays valid.
func (s *Session) ChangePassword(ctx context.Context, current, next string) (*PasswordChangeResponse, error) {
	data := url.Values{
		"current_password": {current},
		"new_password":     {next},
		"confirm_password": {next},
	}

	resp, err := s.postForm(ctx, "/v1/me/password", data)
	if err != nil {
		return nil, err
	}

	var out PasswordChangeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadProfilePicture uploads an image as the user's profile picture.
func (s *Session) UploadProfilePicture(ctx context.Context, filename string, r io.Reader) (*ProfilePictureResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("profile_pic", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/me/profile-picture", s.token, &buf,
		map[string]string{"Content-Type": mw.FormDataContentType()},
	)
	if err != nil {
		return nil, err
	}

	var out ProfilePictureResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTasks returns the user's tasks in creation order.
func (s *Session) ListTasks(ctx context.Context) ([]TaskResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/tasks", s.token, nil, nil)
	if err != nil {
		return nil, err
	}

	var out TaskListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// CreateTask adds a task. The title must not be blank.
func (s *Session) CreateTask(ctx context.Context, title, description string) (*TaskResponse, error) {
	resp, err := s.postForm(ctx, "/v1/tasks", url.Values{
		"title":       {title},
		"description": {description},
	})
	if err != nil {
		return nil, err
	}

	var task TaskResponse
	if err := decodeJSON(resp, &task, http.StatusCreated); err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask marks one of the user's tasks done.
func (s *Session) CompleteTask(ctx context.Context, taskID string) (*TaskResponse, error) {
	path := "/v1/tasks/" + url.PathEscape(taskID) + "/complete"
	resp, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, nil, nil)
	if err != nil {
		return nil, err
	}

	var task TaskResponse
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes one of the user's tasks.
func (s *Session) DeleteTask(ctx context.Context, taskID string) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, "/v1/tasks/"+url.PathEscape(taskID), s.token, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (s *Session) postForm(ctx context.Context, path string, data url.Values) (*http.Response, error) {
	return s.client.doRequest(ctx, http.MethodPost, path, s.token,
		strings.NewReader(data.Encode()),
		map[string]string{"Content-Type": formContentType},
	)
}
