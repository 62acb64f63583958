package ledger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/ledger"
	"github.com/arthur-debert/unbox/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLink(t *testing.T) {
	t.Run("creates and records a symlink", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		target := env.WriteFile("volume-side/notes.txt", "content")
		linkPath := env.HomePath("notes.txt")

		require.NoError(t, env.Ledger.AddLink(linkPath, target, "notes.txt", "1.0", false))

		resolved, err := os.Readlink(linkPath)
		require.NoError(t, err)
		assert.Equal(t, target, resolved)
		assert.Equal(t, "content", env.ReadFile(linkPath))

		link, err := env.Ledger.LinkInfo(linkPath)
		require.NoError(t, err)
		assert.Equal(t, "notes.txt", link.ResourceName)
		assert.Equal(t, "1.0", link.ResourceVersion)
		assert.False(t, link.IgnoreNewVersions)
	})

	t.Run("occupied link path", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		target := env.WriteFile("volume-side/notes.txt", "content")
		linkPath := env.WriteFile("notes.txt", "already here")

		err := env.Ledger.AddLink(linkPath, target, "notes.txt", "1.0", false)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("dangling symlink still occupies the path", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		target := env.WriteFile("volume-side/notes.txt", "content")
		linkPath := env.HomePath("notes.txt")
		require.NoError(t, os.Symlink(env.HomePath("gone"), linkPath))

		err := env.Ledger.AddLink(linkPath, target, "notes.txt", "1.0", false)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("missing target", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)

		err := env.Ledger.AddLink(env.HomePath("notes.txt"), env.HomePath("gone"), "notes.txt", "1.0", false)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("empty name or version", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		target := env.WriteFile("volume-side/notes.txt", "content")

		err := env.Ledger.AddLink(env.HomePath("a"), target, "", "1.0", false)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

		err = env.Ledger.AddLink(env.HomePath("a"), target, "notes.txt", "", false)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("already tracked", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		target := env.WriteFile("volume-side/notes.txt", "content")
		linkPath := env.HomePath("notes.txt")
		require.NoError(t, env.Ledger.AddLink(linkPath, target, "notes.txt", "1.0", false))

		err := env.Ledger.AddLink(linkPath, target, "notes.txt", "1.0", false)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})
}

func TestDeleteLink(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	target := env.WriteFile("volume-side/notes.txt", "content")
	linkPath := env.HomePath("notes.txt")
	require.NoError(t, env.Ledger.AddLink(linkPath, target, "notes.txt", "1.0", false))

	require.NoError(t, env.Ledger.DeleteLink(linkPath))

	_, statErr := os.Lstat(linkPath)
	assert.True(t, os.IsNotExist(statErr))
	assert.False(t, env.Ledger.LinkExists(linkPath))

	t.Run("untracked link", func(t *testing.T) {
		err := env.Ledger.DeleteLink(linkPath)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("entry removed even when link is gone from disk", func(t *testing.T) {
		otherLink := env.HomePath("other.txt")
		require.NoError(t, env.Ledger.AddLink(otherLink, target, "notes.txt", "1.0", false))
		require.NoError(t, os.Remove(otherLink))

		require.NoError(t, env.Ledger.DeleteLink(otherLink))
		assert.False(t, env.Ledger.LinkExists(otherLink))
	})
}

func TestSetIgnoreNewVersions(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	target := env.WriteFile("volume-side/notes.txt", "content")
	linkPath := env.HomePath("notes.txt")
	require.NoError(t, env.Ledger.AddLink(linkPath, target, "notes.txt", "1.0", false))

	require.NoError(t, env.Ledger.SetIgnoreNewVersions(linkPath, true))

	link, err := env.Ledger.LinkInfo(linkPath)
	require.NoError(t, err)
	assert.True(t, link.IgnoreNewVersions)

	// The flag survives a reload.
	reopened, err := ledger.New(env.FS, env.Paths)
	require.NoError(t, err)
	link, err = reopened.LinkInfo(linkPath)
	require.NoError(t, err)
	assert.True(t, link.IgnoreNewVersions)

	t.Run("untracked link", func(t *testing.T) {
		err := env.Ledger.SetIgnoreNewVersions(env.HomePath("nope"), true)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestLinksPersistence(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	target := env.WriteFile("volume-side/notes.txt", "content")
	linkPath := env.HomePath("notes.txt")
	require.NoError(t, env.Ledger.AddLink(linkPath, target, "notes.txt", "2.0", true))

	reopened, err := ledger.New(env.FS, env.Paths)
	require.NoError(t, err)

	links := reopened.Links()
	require.Len(t, links, 1)
	assert.Equal(t, linkPath, links[0].LinkPath)
	assert.Equal(t, target, links[0].Target)
	assert.Equal(t, "notes.txt", links[0].ResourceName)
	assert.Equal(t, "2.0", links[0].ResourceVersion)
	assert.True(t, links[0].IgnoreNewVersions)
}

func TestUpdateResourceVersion(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	target := env.WriteFile("volume-side/notes.txt", "content")

	following := env.HomePath("following.txt")
	pinned := env.HomePath("pinned.txt")
	other := env.HomePath("other.txt")
	require.NoError(t, env.Ledger.AddLink(following, target, "notes.txt", "1.0", false))
	require.NoError(t, env.Ledger.AddLink(pinned, target, "notes.txt", "1.0", true))
	require.NoError(t, env.Ledger.AddLink(other, target, "unrelated.txt", "1.0", false))

	updated, err := env.Ledger.UpdateResourceVersion("notes.txt", "2.0")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	link, err := env.Ledger.LinkInfo(following)
	require.NoError(t, err)
	assert.Equal(t, "2.0", link.ResourceVersion)

	link, err = env.Ledger.LinkInfo(pinned)
	require.NoError(t, err)
	assert.Equal(t, "1.0", link.ResourceVersion)

	link, err = env.Ledger.LinkInfo(other)
	require.NoError(t, err)
	assert.Equal(t, "1.0", link.ResourceVersion)
}

func TestCheckIntegrity(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	target := env.WriteFile("volume-side/notes.txt", "content")

	healthy := env.HomePath("healthy.txt")
	dangling := env.HomePath("dangling.txt")
	replaced := env.HomePath("replaced.txt")
	broken := env.HomePath("broken.txt")
	for _, linkPath := range []string{healthy, dangling, replaced, broken} {
		require.NoError(t, env.Ledger.AddLink(linkPath, target, "notes.txt", "1.0", false))
	}

	// Someone removed the symlink.
	require.NoError(t, os.Remove(dangling))
	// Someone replaced the symlink with a regular file.
	require.NoError(t, os.Remove(replaced))
	require.NoError(t, os.WriteFile(replaced, []byte("impostor"), 0644))
	// The target behind one symlink disappeared.
	require.NoError(t, os.Remove(broken))
	require.NoError(t, os.Symlink(env.HomePath("gone"), broken))

	gotDangling, gotBroken, err := env.Ledger.CheckIntegrity()
	require.NoError(t, err)
	assert.Equal(t, []string{dangling, replaced}, gotDangling)
	assert.Equal(t, []string{broken}, gotBroken)
}

func TestIgnoredResources(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	first := filepath.Join(env.HomeDir, "resources", "a.txt")
	second := filepath.Join(env.HomeDir, "resources", "b.txt")

	require.NoError(t, env.Ledger.Ignore(first))
	require.NoError(t, env.Ledger.Ignore(second))
	require.NoError(t, env.Ledger.Ignore(second)) // idempotent
	assert.Equal(t, []string{first, second}, env.Ledger.IgnoredResources())

	t.Run("unignore", func(t *testing.T) {
		require.NoError(t, env.Ledger.Unignore(first))
		assert.Equal(t, []string{second}, env.Ledger.IgnoredResources())
		require.NoError(t, env.Ledger.Ignore(first))
	})

	t.Run("prune drops entries no longer present", func(t *testing.T) {
		removed, err := env.Ledger.PruneIgnored([]string{second})
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Equal(t, []string{second}, env.Ledger.IgnoredResources())
	})

	t.Run("survives reload", func(t *testing.T) {
		reopened, err := ledger.New(env.FS, env.Paths)
		require.NoError(t, err)
		assert.Equal(t, []string{second}, reopened.IgnoredResources())
	})
}
