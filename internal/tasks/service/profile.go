package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/tasks/internal/tasks/assets"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/idx"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
	"github.com/aussiebroadwan/tasks/pkg/validx"
)

// AllowedPictureExtensions are the upload types accepted for profile pictures.
var AllowedPictureExtensions = []string{"jpg", "jpeg", "png", "gif"}

// ProfileService records where a user's profile picture lives. The reference
// is opaque here: a filename for local storage, a URL for object storage.
type ProfileService struct {
	Store  store.Store
	Assets assets.Store
	Clock  Clock
}

// SetProfileAsset points userID's profile picture at reference.
func (s *ProfileService) SetProfileAsset(ctx context.Context, userID, reference string) error {
	reference = strings.TrimSpace(reference)
	if reason := validx.Required()(reference); reason != "" {
		return invalid("profile_pic", reason)
	}

	now := s.Clock.now()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().UpdateProfileAsset(ctx, userID, reference, now)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return infra("set profile asset", err)
	}

	slogx.FromContext(ctx).Info("profile picture updated", slog.String("user_id", userID))
	return nil
}

// UploadProfilePicture stores body through the configured asset store and
// records the resulting reference. The stored name is the sanitised upload
// name behind a fresh ULID, so two users uploading "me.png" never collide.
func (s *ProfileService) UploadProfilePicture(ctx context.Context, userID, filename string, body io.Reader) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}

	name := assets.SanitizeFilename(filename)
	var v validx.Validator
	v.Field("profile_pic", name, validx.Required(), validx.Extension(AllowedPictureExtensions...))
	if err := v.Err(); err != nil {
		return "", asValidation(err)
	}

	name = idx.New().String() + "_" + name

	ref, err := s.Assets.Put(ctx, name, body, assets.ContentType(name))
	if err != nil {
		return "", infra("store upload", err)
	}

	if err := s.SetProfileAsset(ctx, userID, ref); err != nil {
		// Nothing points at the new object, drop it. The request may be
		// cancelled already.
		if derr := s.Assets.Delete(context.WithoutCancel(ctx), ref); derr != nil {
			slogx.FromContext(ctx).Warn("orphaned profile picture",
				slog.String("user_id", userID),
				slog.String("ref", ref),
				slog.Any("err", derr),
			)
		}
		return "", err
	}
	return ref, nil
}
