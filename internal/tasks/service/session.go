package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

// SessionService moves callers between anonymous and authenticated. A
// session is a signed token plus the server-side row it names; both must
// check out for the caller to be authenticated.
type SessionService struct {
	Store       store.Store
	Credentials *CredentialService
	Signer      jwtx.Signer
	Verifier    jwtx.Verifier
	Issuer      string
	TTL         time.Duration
	Clock       Clock
}

// Login authenticates email and password and opens a new session. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		s.Credentials.burnVerify(password)
		log.Info("login rejected")
		return domain.Session{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, "", infra("load user", err)
	}
	if !s.Credentials.CheckPassword(user, password) {
		log.Info("login rejected", slog.String("user_id", user.ID))
		return domain.Session{}, "", ErrInvalidCredentials
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	now := s.Clock.now()
	sess := domain.Session{
		ID:        idx.NewAt(now).String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := s.Signer.Sign(jwtx.NewSessionClaims(user.ID, sess.ID, user.Username, s.Issuer, ttl, now))
	if err != nil {
		return domain.Session{}, "", infra("sign session", err)
	}
	sess.TokenHash = cryptox.FingerprintToken(token)

	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Sessions().CreateSession(ctx, sess)
	}); err != nil {
		return domain.Session{}, "", infra("create session", err)
	}

	log.Info("login succeeded", slog.String("user_id", user.ID), slog.String("session_id", sess.ID))
	return sess, token, nil
}

// Resolve maps a token to the caller it was issued to. Anything short of a
// valid signature on a live, matching session row is ErrUnauthenticated.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, ErrUnauthenticated
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return domain.Principal{}, ErrUnauthenticated
	}

	sess, err := s.Store.Sessions().GetSession(ctx, claims.SID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Principal{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.Principal{}, infra("load session", err)
	}

	if sess.UserID != claims.Subject ||
		sess.Expired(s.Clock.now()) ||
		!cryptox.MatchesFingerprint(token, sess.TokenHash) {
		return domain.Principal{}, ErrUnauthenticated
	}

	return domain.Principal{
		UserID:    sess.UserID,
		Username:  claims.Username,
		SessionID: sess.ID,
	}, nil
}

// Logout destroys the session named by token. Anonymous, unknown or
// already ended sessions are a no-op, so calling it twice is harmless.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	p, err := s.Resolve(ctx, token)
	if errors.Is(err, ErrUnauthenticated) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.Store.Sessions().DeleteSession(ctx, p.SessionID); err != nil {
		return infra("delete session", err)
	}

	slogx.FromContext(ctx).Info("logout", slog.String("user_id", p.UserID), slog.String("session_id", p.SessionID))
	return nil
}

// RevokeOtherSessions ends every session of the caller except the current
// one and reports how many were ended.
func (s *SessionService) RevokeOtherSessions(ctx context.Context, p domain.Principal) (int64, error) {
	n, err := s.Store.Sessions().DeleteOtherSessions(ctx, p.UserID, p.SessionID)
	if err != nil {
		return 0, infra("revoke sessions", err)
	}
	return n, nil
}
