package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aussiebroadwan/folio/internal/backend/cdn"
	"github.com/aussiebroadwan/folio/internal/backend/domain"
	"github.com/aussiebroadwan/folio/internal/backend/store"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// ImageStore holds uploaded images. *cdn.Bucket implements it.
type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, folder string) (cdn.Image, error)
	Delete(ctx context.Context, publicID string) error
	ThumbnailURL(publicID string, width, height int) string
}

type ProfileService struct {
	Store store.Store

	// Images is optional; without it avatar uploads fail with
	// ErrAvatarsDisabled.
	Images ImageStore

	// MaxAvatarBytes is only used to word validation errors.
	MaxAvatarBytes int64
}

// Me returns the user behind id.
func (s *ProfileService) Me(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// UpdateProfile applies patch to the user's editable fields. The merged
// profile must satisfy the profile bounds as a whole.
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (domain.User, error) {
	current, err := s.Me(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	up := patch.Merge(current)
	if up.IsEmpty() {
		return current, nil
	}

	merged := current
	up.Apply(&merged)
	if err := check(rulesFor(merged)); err != nil {
		return domain.User{}, err
	}

	updated, err := s.Store.UpdateByID(ctx, id, up)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// UploadAvatar stores r as the user's new avatar and returns the updated
// user with a thumbnail URL. The previous avatar is deleted best effort.
func (s *ProfileService) UploadAvatar(ctx context.Context, id string, r io.Reader) (domain.User, string, error) {
	if s.Images == nil {
		return domain.User{}, "", ErrAvatarsDisabled
	}
	log := slogx.FromContext(ctx)

	current, err := s.Me(ctx, id)
	if err != nil {
		return domain.User{}, "", err
	}

	img, err := s.Images.Upload(ctx, r, cdn.AvatarFolder)
	switch {
	case errors.Is(err, cdn.ErrEmpty), errors.Is(err, cdn.ErrTooLarge), errors.Is(err, cdn.ErrUnsupported):
		return domain.User{}, "", &ValidationError{Field: "avatar", Rule: "image", Param: s.sizeLimit()}
	case err != nil:
		return domain.User{}, "", fmt.Errorf("upload avatar: %w", err)
	}

	updated, err := s.Store.UpdateByID(ctx, id, domain.ProfileUpdate{
		Avatar: &domain.Avatar{URL: img.URL, PublicID: img.PublicID},
	})
	if err != nil {
		if derr := s.Images.Delete(ctx, img.PublicID); derr != nil {
			log.Warn("orphaned avatar left in bucket", "public_id", img.PublicID, "err", derr)
		}
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrUserNotFound
		}
		return domain.User{}, "", fmt.Errorf("update user: %w", err)
	}

	if old := current.Avatar.PublicID; old != "" && old != img.PublicID {
		if err := s.Images.Delete(ctx, old); err != nil {
			log.Warn("previous avatar not deleted", "public_id", old, "err", err)
		}
	}

	return updated, s.Images.ThumbnailURL(img.PublicID, 0, 0), nil
}

func (s *ProfileService) sizeLimit() string {
	n := s.MaxAvatarBytes
	if n <= 0 {
		n = cdn.DefaultMaxBytes
	}
	return strconv.FormatInt(n>>20, 10) + " MiB"
}
