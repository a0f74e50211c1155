package http

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
)

// sessionAuthenticator resolves request tokens through the session service.
// Only an unresolvable token counts as anonymous; store failures pass through.
func sessionAuthenticator(s *service.SessionService) httpx.Authenticator {
	return httpx.AuthenticatorFunc(func(ctx context.Context, token string) (httpx.Identity, error) {
		p, err := s.Resolve(ctx, token)
		if errors.Is(err, service.ErrUnauthenticated) {
			return httpx.Identity{}, httpx.ErrInvalidSession
		}
		if err != nil {
			return httpx.Identity{}, err
		}
		return httpx.Identity{
			UserID:    p.UserID,
			Username:  p.Username,
			SessionID: p.SessionID,
		}, nil
	})
}
