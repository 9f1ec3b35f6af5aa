package storage

import (
	"os"
	"path/filepath"
	"testing"

	domainerrors "chirp/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (tempDir, postDir string, store *localImageStore) {
	t.Helper()

	tempDir = filepath.Join(t.TempDir(), "temp")
	postDir = filepath.Join(t.TempDir(), "posts")

	s, err := NewLocalImageStore(tempDir, postDir)
	require.NoError(t, err)

	return tempDir, postDir, s.(*localImageStore)
}

func stage(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644))
}

func TestLocalImageStore_EnsureStaged(t *testing.T) {
	tempDir, _, store := newTestStore(t)
	stage(t, tempDir, "a.png")

	assert.NoError(t, store.EnsureStaged("a.png"))
}

func TestLocalImageStore_EnsureStaged_Missing(t *testing.T) {
	_, _, store := newTestStore(t)

	err := store.EnsureStaged("ghost.png")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "IMAGE_NOT_STAGED", appErr.ErrorCode())
}

func TestLocalImageStore_CommitPostImage(t *testing.T) {
	tempDir, postDir, store := newTestStore(t)
	stage(t, tempDir, "a.png")

	require.NoError(t, store.CommitPostImage("a.png"))

	_, err := os.Stat(filepath.Join(postDir, "a.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(tempDir, "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalImageStore_RejectsEscapingNames(t *testing.T) {
	_, _, store := newTestStore(t)

	for _, name := range []string{"", "../a.png", "sub/a.png", ".hidden"} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, store.EnsureStaged(name))
			assert.Error(t, store.CommitPostImage(name))
		})
	}
}
