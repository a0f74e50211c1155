package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/validx"
)

// CredentialService owns user identities and their password hashes.
type CredentialService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Clock  Clock

	dummyOnce sync.Once
	dummyHash string
}

// NormalizeEmail is how emails are stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a fresh password hash. The email and the
// username must both be unused.
func (s *CredentialService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	var v validx.Validator
	v.Field("username", username, validx.Required(), validx.Length(3, 20)).
		Field("email", email, validx.Required(), validx.Email()).
		Field("password", password, validx.Required())
	if err := v.Err(); err != nil {
		return domain.User{}, asValidation(err)
	}

	// Hash before opening the transaction, argon2 is deliberately slow.
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, infra("hash password", err)
	}

	now := s.Clock.now()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		ProfilePic:   domain.DefaultProfilePic,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return ErrDuplicateUsername
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		return domain.User{}, ErrDuplicateEmail
	case errors.Is(err, store.ErrUsernameTaken):
		return domain.User{}, ErrDuplicateUsername
	case err != nil:
		return domain.User{}, infra("register", err)
	}

	slogx.FromContext(ctx).Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// SetPassword replaces the user's password hash in a single transaction.
func (s *CredentialService) SetPassword(ctx context.Context, userID, plaintext string) error {
	hash, err := s.Hasher.Hash(plaintext)
	if err != nil {
		return infra("hash password", err)
	}

	now := s.Clock.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().UpdatePasswordHash(ctx, userID, hash, now)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return infra("set password", err)
}

// CheckPassword reports whether plaintext matches the user's stored hash.
// Malformed hashes simply do not match.
func (s *CredentialService) CheckPassword(user domain.User, plaintext string) bool {
	return s.Hasher.Verify(plaintext, user.PasswordHash) == nil
}

// ChangePassword verifies the current password before setting the next one.
func (s *CredentialService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return infra("load user", err)
	}

	if !s.CheckPassword(user, current) {
		return ErrInvalidCredentials
	}
	if err := s.SetPassword(ctx, userID, next); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("user_id", userID))
	return nil
}

// burnVerify spends the same work as a real password check so that unknown
// emails and wrong passwords take a similar time.
func (s *CredentialService) burnVerify(plaintext string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash(cryptox.MustGenerateSecret(cryptox.SecretSize))
	})
	_ = s.Hasher.Verify(plaintext, s.dummyHash)
}
