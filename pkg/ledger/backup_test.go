package ledger_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/ledger"
	"github.com/arthur-debert/unbox/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupRoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	original := env.WriteFile("settings.json", `{"theme": "dark"}`)

	require.NoError(t, env.Ledger.BackupAdd(original))

	// The original path is free for a link now.
	_, statErr := os.Lstat(original)
	assert.True(t, os.IsNotExist(statErr))
	assert.True(t, env.Ledger.BackupExists(original))

	backups := env.Ledger.ListBackups()
	require.Len(t, backups, 1)
	assert.Equal(t, original, backups[0].OriginalPath)
	assert.NotEmpty(t, backups[0].QuarantineID)

	require.NoError(t, env.Ledger.BackupRestore(original))

	// Byte-identical after the round trip.
	assert.Equal(t, `{"theme": "dark"}`, env.ReadFile(original))
	assert.False(t, env.Ledger.BackupExists(original))

	// No quarantine directory left behind.
	entries, err := os.ReadDir(env.Paths.BackupsDir())
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, entry.IsDir(), "orphan quarantine directory %s", entry.Name())
	}
}

func TestBackupDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	original := env.WriteTree("profile", map[string]string{
		"config.ini":    "a=1",
		"sub/extra.ini": "b=2",
	})

	require.NoError(t, env.Ledger.BackupAdd(original))
	require.NoError(t, env.Ledger.BackupRestore(original))

	assert.Equal(t, "a=1", env.ReadFile(env.HomePath("profile", "config.ini")))
	assert.Equal(t, "b=2", env.ReadFile(env.HomePath("profile", "sub", "extra.ini")))
}

func TestBackupAddErrors(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	t.Run("missing path", func(t *testing.T) {
		err := env.Ledger.BackupAdd(env.HomePath("gone.txt"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("at most one backup per path", func(t *testing.T) {
		original := env.WriteFile("settings.json", "v1")
		require.NoError(t, env.Ledger.BackupAdd(original))

		// The path is occupied again, but the entry is still active.
		env.WriteFile("settings.json", "v2")
		err := env.Ledger.BackupAdd(original)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})
}

func TestBackupDelete(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	original := env.WriteFile("settings.json", "discard me")
	require.NoError(t, env.Ledger.BackupAdd(original))

	require.NoError(t, env.Ledger.BackupDelete(original))

	assert.False(t, env.Ledger.BackupExists(original))
	_, statErr := os.Lstat(original)
	assert.True(t, os.IsNotExist(statErr))

	t.Run("unknown entry", func(t *testing.T) {
		err := env.Ledger.BackupDelete(original)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestBackupPersistence(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	original := env.WriteFile("settings.json", "keep me")
	require.NoError(t, env.Ledger.BackupAdd(original))

	reopened, err := ledger.New(env.FS, env.Paths)
	require.NoError(t, err)

	assert.True(t, reopened.BackupExists(original))
	require.NoError(t, reopened.BackupRestore(original))
	assert.Equal(t, "keep me", env.ReadFile(original))
}
