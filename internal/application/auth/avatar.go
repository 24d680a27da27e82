package auth

import (
	"context"
	"io"

	"github.com/baechuer/contactbook/internal/domain"
)

// UpdateAvatar stores the uploaded image (resized to the fixed square
// dimension, relocated under a name embedding the account id) and
// persists the resulting public URL. The id-based filename means
// concurrent uploads for the same account can only race as
// last-write-wins, never as a partial write.
func (s *Service) UpdateAvatar(ctx context.Context, userID, originalName string, r io.Reader) (string, error) {
	if !s.avatarEnabled {
		return "", domain.ErrRouteNotFound()
	}
	if r == nil || originalName == "" {
		return "", domain.ErrFileNotUploaded()
	}

	url, err := s.avatar.Store(ctx, userID, originalName, r)
	if err != nil {
		return "", err
	}

	if err := s.users.SetAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}

	s.audit("avatar_updated", map[string]string{"user_id": userID})
	return url, nil
}

// AvatarUploadEnabled reports the feature flag; the router uses it to
// decide whether the avatars route is mounted at all.
func (s *Service) AvatarUploadEnabled() bool { return s.avatarEnabled }
