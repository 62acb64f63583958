// Package paths provides centralized path handling for unbox.
// It owns the on-volume directory layout (storage directories, version
// directories, the `current` pointer, the volume index) and the local-side
// layout (link index, backup quarantine), and provides the user-expanded
// absolute path normalization the rest of the codebase relies on.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/types"
)

// Environment variable names
const (
	// EnvVolumeRoot is the primary environment variable for the synchronized
	// volume location
	EnvVolumeRoot = "UNBOX_VOLUME"

	// EnvLocalDir overrides the local unbox directory
	EnvLocalDir = "UNBOX_LOCAL_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define the on-volume layout shared with every
// other machine syncing the same volume. They are NOT user-configurable;
// changing them orphans previously stored resources.
const (
	// UnboxDirName is the directory name for unbox-managed files, both
	// inside the volume and under the local XDG data directory
	UnboxDirName = "unbox"

	// IndexFileName is the name of the index document, used by the volume
	// index, the local link index, and the backup index alike
	IndexFileName = "index.json"

	// BackupsDirName is the subdirectory holding quarantined files
	BackupsDirName = "backups"
)

// Paths provides centralized path management for unbox
type Paths interface {
	// VolumeRoot returns the root of the synchronized volume
	VolumeRoot() string

	// UnboxDir returns the unbox directory inside the volume
	UnboxDir() string

	// IndexFile returns the path to the volume-side index document
	IndexFile() string

	// StorageDir returns the path of a resource's storage directory
	StorageDir(storageDirName string) string

	// VersionDir returns the directory holding one version's content
	VersionDir(storageDirName, version string) string

	// VersionContentPath returns the content path of a named version
	VersionContentPath(storageDirName, version, resourceName string) string

	// CurrentLink returns the path of the `current` pointer symlink
	CurrentLink(storageDirName string) string

	// CurrentContentPath returns the content path traversing the pointer
	CurrentContentPath(storageDirName, resourceName string) string

	// LocalRoot returns the local unbox directory
	LocalRoot() string

	// LocalIndexFile returns the path to the local link index document
	LocalIndexFile() string

	// BackupsDir returns the local quarantine directory
	BackupsDir() string

	// BackupIndexFile returns the path to the backup index document
	BackupIndexFile() string

	// QuarantineDir returns the quarantine subdirectory for one backup entry
	QuarantineDir(id string) string
}

type paths struct {
	// volumeRoot is the root of the synchronized volume
	volumeRoot string

	// localRoot is the local unbox directory
	localRoot string
}

// New creates a new Paths instance. If volumeRoot is empty it is taken from
// the UNBOX_VOLUME environment variable; if localRoot is empty it is taken
// from UNBOX_LOCAL_DIR, falling back to the XDG data directory.
func New(volumeRoot, localRoot string) (Paths, error) {
	if volumeRoot == "" {
		volumeRoot = os.Getenv(EnvVolumeRoot)
	}
	if volumeRoot == "" {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"volume root not set: pass it explicitly or set %s", EnvVolumeRoot)
	}

	if localRoot == "" {
		localRoot = os.Getenv(EnvLocalDir)
	}
	if localRoot == "" {
		localRoot = filepath.Join(xdg.DataHome, UnboxDirName)
	}

	absVolume, err := AbsPath(volumeRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to resolve volume root %q", volumeRoot)
	}
	absLocal, err := AbsPath(localRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to resolve local root %q", localRoot)
	}

	return &paths{
		volumeRoot: absVolume,
		localRoot:  absLocal,
	}, nil
}

// AbsPath returns the user-expanded, normalized, absolute path to a file
// object. Relative paths resolve against the current working directory.
func AbsPath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "cannot resolve empty path")
	}
	expanded := ExpandHome(path)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIOFailure, "failed to resolve path %q", path)
	}
	return abs, nil
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// VolumeRoot returns the root of the synchronized volume
func (p *paths) VolumeRoot() string {
	return p.volumeRoot
}

// UnboxDir returns the unbox directory inside the volume
func (p *paths) UnboxDir() string {
	return filepath.Join(p.volumeRoot, UnboxDirName)
}

// IndexFile returns the path to the volume-side index document
func (p *paths) IndexFile() string {
	return filepath.Join(p.UnboxDir(), IndexFileName)
}

// StorageDir returns the path of a resource's storage directory
func (p *paths) StorageDir(storageDirName string) string {
	return filepath.Join(p.UnboxDir(), storageDirName)
}

// VersionDir returns the directory holding one version's content
func (p *paths) VersionDir(storageDirName, version string) string {
	return filepath.Join(p.StorageDir(storageDirName), version)
}

// VersionContentPath returns the content path of a named version
func (p *paths) VersionContentPath(storageDirName, version, resourceName string) string {
	return filepath.Join(p.VersionDir(storageDirName, version), resourceName)
}

// CurrentLink returns the path of the `current` pointer symlink
func (p *paths) CurrentLink(storageDirName string) string {
	return filepath.Join(p.StorageDir(storageDirName), types.CurrentVersionLinkName)
}

// CurrentContentPath returns the content path traversing the pointer.
// The result is dynamic: it changes meaning when the pointer is re-targeted.
func (p *paths) CurrentContentPath(storageDirName, resourceName string) string {
	return filepath.Join(p.CurrentLink(storageDirName), resourceName)
}

// LocalRoot returns the local unbox directory
func (p *paths) LocalRoot() string {
	return p.localRoot
}

// LocalIndexFile returns the path to the local link index document
func (p *paths) LocalIndexFile() string {
	return filepath.Join(p.localRoot, IndexFileName)
}

// BackupsDir returns the local quarantine directory
func (p *paths) BackupsDir() string {
	return filepath.Join(p.localRoot, BackupsDirName)
}

// BackupIndexFile returns the path to the backup index document
func (p *paths) BackupIndexFile() string {
	return filepath.Join(p.BackupsDir(), IndexFileName)
}

// QuarantineDir returns the quarantine subdirectory for one backup entry
func (p *paths) QuarantineDir(id string) string {
	return filepath.Join(p.BackupsDir(), id)
}
