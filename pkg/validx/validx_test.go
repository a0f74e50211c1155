package validx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aussiebroadwan/tasks/pkg/validx"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	check := validx.Required()
	require.Equal(t, validx.ReasonRequired, check(""))
	require.Equal(t, validx.ReasonRequired, check(" \t\n"))
	require.Empty(t, check("x"))
}

func TestLength(t *testing.T) {
	check := validx.Length(3, 20)
	require.Equal(t, validx.ReasonTooShort, check("ab"))
	require.Empty(t, check("abc"))
	require.Empty(t, check(strings.Repeat("a", 20)))
	require.Equal(t, validx.ReasonTooLong, check(strings.Repeat("a", 21)))

	// counts characters, not bytes
	require.Empty(t, check("äöü"))

	require.Empty(t, validx.Length(6, 0)(strings.Repeat("x", 500)))
}

func TestEmail(t *testing.T) {
	check := validx.Email()
	for _, ok := range []string{"a@x.com", "first.last+tag@sub.example.org"} {
		require.Empty(t, check(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@", "@x.com", "a@localhost", "Alice <a@x.com>", "a@x."} {
		require.Equal(t, validx.ReasonEmail, check(bad), bad)
	}
}

func TestEqualTo(t *testing.T) {
	require.Empty(t, validx.EqualTo("secret1")("secret1"))
	require.Equal(t, validx.ReasonMismatch, validx.EqualTo("secret1")("secret2"))
}

func TestExtension(t *testing.T) {
	check := validx.Extension("jpg", "jpeg", "png", "gif")
	for _, ok := range []string{"me.jpg", "ME.JPEG", "a.b.png", "x.gif"} {
		require.Empty(t, check(ok), ok)
	}
	for _, bad := range []string{"me", "me.bmp", "me.png.exe", ".jpg.", "jpg"} {
		require.Equal(t, validx.ReasonExtension, check(bad), bad)
	}
}

func TestValidatorCollectsFirstFailurePerField(t *testing.T) {
	var v validx.Validator
	v.Field("username", "", validx.Required(), validx.Length(3, 20)).
		Field("email", "a@x.com", validx.Required(), validx.Email()).
		Field("password", "abc", validx.Required(), validx.Length(6, 0))

	require.False(t, v.Valid())

	var errs validx.Errors
	require.True(t, errors.As(v.Err(), &errs))
	require.Equal(t, map[string]string{
		"username": validx.ReasonRequired,
		"password": validx.ReasonTooShort,
	}, errs.Map())
	require.Contains(t, errs.Error(), "username: required")
}

func TestValidatorValid(t *testing.T) {
	var v validx.Validator
	v.Field("title", "Buy milk", validx.Required())
	require.True(t, v.Valid())
	require.NoError(t, v.Err())
}
