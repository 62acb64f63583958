package filesystem_test

import (
	"testing"

	"github.com/arthur-debert/unbox/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoFS(t *testing.T) {
	fs := filesystem.NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fs.MkdirAll("/data/nested", 0755))
	require.NoError(t, fs.WriteFile("/data/nested/a.txt", []byte("payload"), 0644))

	data, err := fs.ReadFile("/data/nested/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	entries, err := fs.ReadDir("/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())

	t.Run("reading a directory fails", func(t *testing.T) {
		_, err := fs.ReadFile("/data/nested")
		require.Error(t, err)
	})

	t.Run("simulated symlink round trip", func(t *testing.T) {
		require.NoError(t, fs.Symlink("/data/nested/a.txt", "/data/alias"))
		target, err := fs.Readlink("/data/alias")
		require.NoError(t, err)
		assert.Equal(t, "/data/nested/a.txt", target)
	})

	t.Run("rename and remove", func(t *testing.T) {
		require.NoError(t, fs.Rename("/data/nested/a.txt", "/data/nested/b.txt"))
		_, err := fs.Stat("/data/nested/b.txt")
		require.NoError(t, err)

		require.NoError(t, fs.RemoveAll("/data"))
		_, err = fs.Stat("/data/nested/b.txt")
		require.Error(t, err)
	})
}
