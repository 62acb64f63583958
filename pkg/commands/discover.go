package commands

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/arthur-debert/unbox/pkg/types"
)

// DiscoverResources walks the resources directory recursively and returns
// the sorted absolute paths of every file found. Directories are traversal
// structure, not candidates.
func DiscoverResources(fs types.FS, root string) ([]string, error) {
	abs, err := paths.AbsPath(root)
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(abs); err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "resources directory %s is not readable", abs)
	}

	var found []string
	if err := walkFiles(fs, abs, &found); err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

func walkFiles(fs types.FS, dir string, found *[]string) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to read directory %s", dir)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := walkFiles(fs, path, found); err != nil {
				return err
			}
			continue
		}
		*found = append(*found, path)
	}
	return nil
}
