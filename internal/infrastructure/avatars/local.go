package avatars

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/baechuer/contactbook/internal/domain"
	"github.com/baechuer/contactbook/internal/infrastructure/imaging"
)

// Side length of the stored avatar square.
const Dimension = 250

// LocalStore implements auth.AvatarStore on the local filesystem: the
// upload is decoded, resized to Dimension x Dimension, written to a
// staging directory and then renamed into the public avatars
// directory. The final name embeds the account id, so concurrent
// uploads for one account can only race as last-write-wins.
type LocalStore struct {
	tmpDir    string
	publicDir string
	maxBytes  int64
}

func NewLocalStore(tmpDir, publicDir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("avatar tmp dir: %w", err)
	}
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return nil, fmt.Errorf("avatar public dir: %w", err)
	}
	return &LocalStore{tmpDir: tmpDir, publicDir: publicDir, maxBytes: maxBytes}, nil
}

func (s *LocalStore) Store(ctx context.Context, userID, originalName string, r io.Reader) (string, error) {
	originalName = filepath.Base(originalName)

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", domain.ErrInternal(err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", domain.ErrImageInvalid(fmt.Errorf("file exceeds %d bytes", s.maxBytes))
	}

	mimeType, err := imaging.DetectType(data)
	if err != nil {
		return "", domain.ErrImageInvalid(err)
	}
	img, err := imaging.Decode(data, mimeType)
	if err != nil {
		return "", domain.ErrImageInvalid(err)
	}

	resized, err := imaging.Encode(imaging.Resize(img, Dimension, Dimension), mimeType)
	if err != nil {
		return "", domain.ErrInternal(err)
	}

	// Stage under a random name, then rename into place. Rename is the
	// atomic step; a crash mid-write leaves only staging debris.
	ext := filepath.Ext(originalName)
	base := originalName[:len(originalName)-len(ext)]
	staged := filepath.Join(s.tmpDir, fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext))
	if err := os.WriteFile(staged, resized, 0o644); err != nil {
		return "", domain.ErrInternal(err)
	}

	final := fmt.Sprintf("%s-%s", userID, originalName)
	if err := os.Rename(staged, filepath.Join(s.publicDir, final)); err != nil {
		_ = os.Remove(staged)
		return "", domain.ErrInternal(err)
	}

	return path.Join("/avatars", final), nil
}
