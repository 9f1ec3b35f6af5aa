// Package storage implements the image store on the local filesystem.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/service"
	"chirp/internal/errors"
)

// localImageStore keeps staged uploads in a temporary directory and moves
// them into the post-image directory when a post references them.
type localImageStore struct {
	tempDir      string
	postImageDir string
}

// NewLocalImageStore is the constructor for localImageStore. Both directories
// are created if missing.
func NewLocalImageStore(tempDir, postImageDir string) (service.ImageStore, error) {
	for _, dir := range []string{tempDir, postImageDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create image directory %s", dir)
		}
	}

	return &localImageStore{tempDir: tempDir, postImageDir: postImageDir}, nil
}

// EnsureStaged fails when no staged file with the name exists.
func (s *localImageStore) EnsureStaged(name string) error {
	path, err := s.safeJoin(s.tempDir, name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return domainerrors.ErrImageNotStaged.WithDetails("no staged file named " + name)
	}

	return nil
}

// CommitPostImage moves a staged file into the permanent post-image store.
func (s *localImageStore) CommitPostImage(name string) error {
	src, err := s.safeJoin(s.tempDir, name)
	if err != nil {
		return err
	}

	dst, err := s.safeJoin(s.postImageDir, name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(src); err != nil {
		return domainerrors.ErrImageNotStaged.WithDetails("no staged file named " + name)
	}

	if err := os.Rename(src, dst); err != nil {
		return errors.Wrap(err, "move staged image")
	}

	return nil
}

// safeJoin rejects names that would escape the store directory.
func (s *localImageStore) safeJoin(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", domainerrors.ErrImageNotStaged.WithDetails("invalid image name " + name)
	}

	return filepath.Join(dir, name), nil
}
