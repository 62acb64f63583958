package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/unbox/pkg/types"
)

// CopyFile copies a single regular file. The destination's parent directory
// must already exist. The source is left untouched.
func CopyFile(fs types.FS, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source is a directory, not a file: %s", src)
	}

	data, err := fs.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}
	if err := fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write destination file: %w", err)
	}
	return nil
}

// CopyTree recursively copies a directory tree rooted at src to dst, which
// must not exist yet. Symlinks inside the tree are recreated, not followed.
func CopyTree(fs types.FS, src, dst string) error {
	info, err := fs.Lstat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source is not a directory: %s", src)
	}

	if err := fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		entryInfo, err := fs.Lstat(srcPath)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", srcPath, err)
		}

		switch {
		case entryInfo.Mode()&os.ModeSymlink != 0:
			target, err := fs.Readlink(srcPath)
			if err != nil {
				return fmt.Errorf("failed to read symlink %s: %w", srcPath, err)
			}
			if err := fs.Symlink(target, dstPath); err != nil {
				return fmt.Errorf("failed to recreate symlink %s: %w", dstPath, err)
			}
		case entryInfo.IsDir():
			if err := CopyTree(fs, srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := CopyFile(fs, srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// CopyAny copies a file or a directory tree, dispatching on the source type.
func CopyAny(fs types.FS, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if info.IsDir() {
		return CopyTree(fs, src, dst)
	}
	return CopyFile(fs, src, dst)
}

// MoveAll moves a file or directory tree. It prefers a rename and falls back
// to copy-then-delete when the rename fails (e.g. across filesystems).
func MoveAll(fs types.FS, src, dst string) error {
	if err := fs.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyAny(fs, src, dst); err != nil {
		return fmt.Errorf("failed to copy during move: %w", err)
	}
	if err := fs.RemoveAll(src); err != nil {
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}
	return nil
}
