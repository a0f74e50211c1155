package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/pkg/validx"
)

// minPasswordLength applies to new passwords only; logins accept whatever
// was stored.
const minPasswordLength = 6

// RegisterForm is the body of POST /v1/register.
type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func parseRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
}

func (f RegisterForm) Validate() error {
	var v validx.Validator
	v.Field("username", f.Username, validx.Required(), validx.Length(3, 20)).
		Field("email", f.Email, validx.Required(), validx.Email()).
		Field("password", f.Password, validx.Required(), validx.Length(minPasswordLength, 0)).
		Field("confirm_password", f.ConfirmPassword, validx.Required(), validx.EqualTo(f.Password))
	return v.Err()
}

// LoginForm is the body of POST /v1/login.
type LoginForm struct {
	Email    string
	Password string
}

func parseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

func (f LoginForm) Validate() error {
	var v validx.Validator
	v.Field("email", f.Email, validx.Required(), validx.Email()).
		Field("password", f.Password, validx.Required())
	return v.Err()
}

// TaskForm is the body of POST /v1/tasks.
type TaskForm struct {
	Title       string
	Description string
}

func parseTaskForm(r *http.Request) TaskForm {
	return TaskForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: r.PostFormValue("description"),
	}
}

func (f TaskForm) Validate() error {
	var v validx.Validator
	v.Field("title", f.Title, validx.Required(), validx.Length(1, 200))
	return v.Err()
}

// PasswordForm is the body of POST /v1/me/password.
type PasswordForm struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func parsePasswordForm(r *http.Request) PasswordForm {
	return PasswordForm{
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
}

func (f PasswordForm) Validate() error {
	var v validx.Validator
	v.Field("current_password", f.CurrentPassword, validx.Required()).
		Field("new_password", f.NewPassword, validx.Required(), validx.Length(minPasswordLength, 0)).
		Field("confirm_password", f.ConfirmPassword, validx.Required(), validx.EqualTo(f.NewPassword))
	return v.Err()
}
