package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/unbox/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	fs := filesystem.NewOS()
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0600))

	dst := filepath.Join(tempDir, "dst.txt")
	require.NoError(t, filesystem.CopyFile(fs, src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	t.Run("directory source is rejected", func(t *testing.T) {
		err := filesystem.CopyFile(fs, tempDir, filepath.Join(tempDir, "out"))
		require.Error(t, err)
	})
}

func TestCopyTree(t *testing.T) {
	fs := filesystem.NewOS()
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "deep.txt"), []byte("deep"), 0644))
	require.NoError(t, os.Symlink("top.txt", filepath.Join(src, "alias")))

	dst := filepath.Join(tempDir, "copy")
	require.NoError(t, filesystem.CopyTree(fs, src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "nested", "deep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(data))

	// Symlinks are recreated, not followed.
	target, err := os.Readlink(filepath.Join(dst, "alias"))
	require.NoError(t, err)
	assert.Equal(t, "top.txt", target)

	t.Run("file source is rejected", func(t *testing.T) {
		err := filesystem.CopyTree(fs, filepath.Join(src, "top.txt"), filepath.Join(tempDir, "out"))
		require.Error(t, err)
	})
}

func TestCopyAny(t *testing.T) {
	fs := filesystem.NewOS()
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "file.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))
	require.NoError(t, filesystem.CopyAny(fs, src, filepath.Join(tempDir, "file-copy.txt")))

	dir := filepath.Join(tempDir, "dir")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, filesystem.CopyAny(fs, dir, filepath.Join(tempDir, "dir-copy")))

	assert.FileExists(t, filepath.Join(tempDir, "file-copy.txt"))
	assert.DirExists(t, filepath.Join(tempDir, "dir-copy"))
}

func TestMoveAll(t *testing.T) {
	fs := filesystem.NewOS()
	tempDir := t.TempDir()

	src := filepath.Join(tempDir, "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0644))

	dst := filepath.Join(tempDir, "dst")
	require.NoError(t, filesystem.MoveAll(fs, src, dst))

	assert.FileExists(t, filepath.Join(dst, "a.txt"))
	_, err := os.Lstat(src)
	assert.True(t, os.IsNotExist(err))
}
