package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// Authenticator turns a raw session token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Identity, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, token string) (Identity, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}

// ErrInvalidSession is what an Authenticator returns for a token that does
// not name a live session. The caller is then treated as anonymous; any other
// error is a server failure.
var ErrInvalidSession = errors.New("httpx: invalid session")

// TokenFromRequest returns the session token the caller presented, preferring
// an explicit "Authorization: Bearer" header over the named cookie. Empty
// means anonymous.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if tokens := tokensFromRequest(r, cookieName); len(tokens) > 0 {
		return tokens[0]
	}
	return ""
}

// tokensFromRequest lists the bearer token then the cookie token, skipping
// empty and repeated values.
func tokensFromRequest(r *http.Request, cookieName string) []string {
	var tokens []string
	authz := r.Header.Get("Authorization")
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		if t := strings.TrimSpace(authz[7:]); t != "" {
			tokens = append(tokens, t)
		}
	}
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		if len(tokens) == 0 || tokens[0] != c.Value {
			tokens = append(tokens, c.Value)
		}
	}
	return tokens
}

// SessionMiddleware resolves the caller on every request. Each presented
// token is tried in turn; if none resolves the request continues as
// anonymous and gating is left to RequireSession. An Authenticator failure
// other than ErrInvalidSession answers 500.
func SessionMiddleware(a Authenticator, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			for _, token := range tokensFromRequest(r, cookieName) {
				id, err := a.Authenticate(ctx, token)
				if errors.Is(err, ErrInvalidSession) {
					slogx.FromContext(ctx).Debug("session not resolved")
					continue
				}
				if err != nil {
					slogx.FromContext(ctx).Error("session lookup failed", "err", err)
					WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
					return
				}

				ctx = WithIdentity(ctx, id)
				ctx = slogx.WithUserID(ctx, id.UserID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects anonymous callers with 401 and points them at
// loginURL.
func RequireSession(loginURL string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFromContext(r.Context()); !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="tasks"`)
				WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
					Error:            "unauthenticated",
					ErrorDescription: "login required",
					LoginURL:         loginURL,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
