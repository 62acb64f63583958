// Package testutil orchestrates isolated test environments with a real
// filesystem under t.TempDir, so symlink behavior is exercised for real.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/unbox/pkg/filesystem"
	"github.com/arthur-debert/unbox/pkg/ledger"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/arthur-debert/unbox/pkg/store"
	"github.com/arthur-debert/unbox/pkg/types"
)

// TestEnvironment provides a volume root and local root in a temp directory,
// with the collaborators wired against them.
type TestEnvironment struct {
	VolumeRoot string
	LocalRoot  string
	HomeDir    string

	FS     types.FS
	Paths  paths.Paths
	Store  *store.Store
	Ledger *ledger.Ledger

	t *testing.T
}

// NewTestEnvironment creates an isolated environment rooted at t.TempDir.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		VolumeRoot: filepath.Join(tempDir, "volume"),
		LocalRoot:  filepath.Join(tempDir, "local"),
		HomeDir:    filepath.Join(tempDir, "home"),
		FS:         filesystem.NewOS(),
		t:          t,
	}

	for _, dir := range []string{env.VolumeRoot, env.LocalRoot, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)

	p, err := paths.New(env.VolumeRoot, env.LocalRoot)
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	st, err := store.New(env.FS, p)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	env.Store = st

	ld, err := ledger.New(env.FS, p)
	if err != nil {
		t.Fatalf("Failed to create ledger: %v", err)
	}
	env.Ledger = ld

	return env
}

// WriteFile creates a file (and parent directories) under the environment.
// Relative paths are resolved against the temp home directory.
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()

	if !filepath.IsAbs(path) {
		path = filepath.Join(env.HomeDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteTree creates a directory populated from relative path -> content
// pairs, and returns its absolute path.
func (env *TestEnvironment) WriteTree(name string, files map[string]string) string {
	env.t.Helper()

	root := filepath.Join(env.HomeDir, name)
	if err := os.MkdirAll(root, 0755); err != nil {
		env.t.Fatalf("Failed to create %s: %v", root, err)
	}
	for rel, content := range files {
		env.WriteFile(filepath.Join(root, rel), content)
	}
	return root
}

// HomePath resolves a path relative to the temp home directory.
func (env *TestEnvironment) HomePath(parts ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, parts...)...)
}

// ReadFile reads a file and fails the test on error.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
