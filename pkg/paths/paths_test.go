package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("explicit roots", func(t *testing.T) {
		tempDir := t.TempDir()
		p, err := paths.New(filepath.Join(tempDir, "volume"), filepath.Join(tempDir, "local"))
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(tempDir, "volume"), p.VolumeRoot())
		assert.Equal(t, filepath.Join(tempDir, "local"), p.LocalRoot())
	})

	t.Run("volume root from environment", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv(paths.EnvVolumeRoot, filepath.Join(tempDir, "env-volume"))
		t.Setenv(paths.EnvLocalDir, filepath.Join(tempDir, "env-local"))

		p, err := paths.New("", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tempDir, "env-volume"), p.VolumeRoot())
		assert.Equal(t, filepath.Join(tempDir, "env-local"), p.LocalRoot())
	})

	t.Run("missing volume root", func(t *testing.T) {
		t.Setenv(paths.EnvVolumeRoot, "")

		_, err := paths.New("", "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestLayout(t *testing.T) {
	tempDir := t.TempDir()
	volume := filepath.Join(tempDir, "volume")
	local := filepath.Join(tempDir, "local")
	p, err := paths.New(volume, local)
	require.NoError(t, err)

	unboxDir := filepath.Join(volume, "unbox")
	assert.Equal(t, unboxDir, p.UnboxDir())
	assert.Equal(t, filepath.Join(unboxDir, "index.json"), p.IndexFile())
	assert.Equal(t, filepath.Join(unboxDir, "abc"), p.StorageDir("abc"))
	assert.Equal(t, filepath.Join(unboxDir, "abc", "1.0"), p.VersionDir("abc", "1.0"))
	assert.Equal(t, filepath.Join(unboxDir, "abc", "1.0", "notes.txt"), p.VersionContentPath("abc", "1.0", "notes.txt"))
	assert.Equal(t, filepath.Join(unboxDir, "abc", "current"), p.CurrentLink("abc"))
	assert.Equal(t, filepath.Join(unboxDir, "abc", "current", "notes.txt"), p.CurrentContentPath("abc", "notes.txt"))

	assert.Equal(t, filepath.Join(local, "index.json"), p.LocalIndexFile())
	assert.Equal(t, filepath.Join(local, "backups"), p.BackupsDir())
	assert.Equal(t, filepath.Join(local, "backups", "index.json"), p.BackupIndexFile())
	assert.Equal(t, filepath.Join(local, "backups", "id-1"), p.QuarantineDir("id-1"))
}

func TestAbsPath(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := paths.AbsPath("")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("relative path resolves against cwd", func(t *testing.T) {
		cwd, err := os.Getwd()
		require.NoError(t, err)

		abs, err := paths.AbsPath("notes.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cwd, "notes.txt"), abs)
	})

	t.Run("absolute path unchanged", func(t *testing.T) {
		abs, err := paths.AbsPath("/tmp/notes.txt")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/notes.txt", abs)
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, home, paths.ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "notes.txt"), paths.ExpandHome("~/notes.txt"))
	assert.Equal(t, "~user/notes.txt", paths.ExpandHome("~user/notes.txt"))
	assert.Equal(t, "/etc/hosts", paths.ExpandHome("/etc/hosts"))
	assert.Equal(t, "", paths.ExpandHome(""))
}
