package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/filesystem"
	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/arthur-debert/unbox/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultVersion is the version label assigned when none is given at add time.
const DefaultVersion = "1.0"

// Store tracks versioned resources inside the synchronized volume.
type Store struct {
	mu     sync.Mutex
	fs     types.FS
	paths  paths.Paths
	index  map[string]*types.Resource
	logger zerolog.Logger
}

// New creates a Store rooted at the volume described by p. The volume root
// must be an existing directory; the unbox directory inside it is created if
// missing. The index document is loaded once, here; an absent index file
// means an empty store.
func New(fs types.FS, p paths.Paths) (*Store, error) {
	info, err := fs.Stat(p.VolumeRoot())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "volume root does not exist: %s", p.VolumeRoot())
		}
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to stat volume root %s", p.VolumeRoot())
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "volume root is not a directory: %s", p.VolumeRoot())
	}

	if err := fs.MkdirAll(p.UnboxDir(), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to create unbox directory %s", p.UnboxDir())
	}

	s := &Store{
		fs:     fs,
		paths:  p,
		logger: logging.GetLogger("store"),
	}
	if err := s.loadIndex(); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("volume", p.VolumeRoot()).
		Int("resources", len(s.index)).
		Msg("Resource store initialized")
	return s, nil
}

// ResourceExists reports whether a resource with the given name is tracked.
func (s *Store) ResourceExists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[name]
	return ok
}

// VersionExists reports whether the named resource carries the given version.
func (s *Store) VersionExists(name, version string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resource, err := s.resource(name)
	if err != nil {
		return false, err
	}
	return resource.HasVersion(version), nil
}

// ResourceInfo returns the storage directory name, current version, and
// sorted version labels of a resource.
func (s *Store) ResourceInfo(name string) (*types.ResourceInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resource, err := s.resource(name)
	if err != nil {
		return nil, err
	}
	return &types.ResourceInfo{
		StorageDir:     resource.StorageDir,
		CurrentVersion: resource.CurrentVersion,
		Versions:       resource.VersionLabels(),
	}, nil
}

// Resources returns the sorted names of all tracked resources.
func (s *Store) Resources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.index))
	for name := range s.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResourcePath returns the absolute path to a resource's content. With an
// empty version the path traverses the `current` pointer, so it keeps
// resolving to whatever version is live when the pointer later changes. With
// a version given, the named version's content path is returned directly.
func (s *Store) ResourcePath(name, version string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resource, err := s.resource(name)
	if err != nil {
		return "", err
	}

	if version == "" {
		return s.paths.CurrentContentPath(resource.StorageDir, resource.Name), nil
	}
	if !resource.HasVersion(version) {
		return "", errors.Newf(errors.ErrNotFound, "resource %q has no version %q", name, version)
	}
	return s.paths.VersionContentPath(resource.StorageDir, version, resource.Name), nil
}

// AddResource deep-copies the file or directory at localPath into a fresh
// storage directory, records it under its basename with the given version
// and dependency labels, creates the `current` pointer, and commits the
// index. The source is left untouched. Returns the storage directory path.
func (s *Store) AddResource(localPath, version string, dependencies []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if version == "" {
		version = DefaultVersion
	}
	version, err := validVersionLabel(version)
	if err != nil {
		return "", err
	}

	absPath, err := paths.AbsPath(localPath)
	if err != nil {
		return "", err
	}
	info, err := s.fs.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrNotFound, "cannot add resource: %s does not exist", absPath)
		}
		return "", errors.Wrapf(err, errors.ErrIOFailure, "failed to stat %s", absPath)
	}
	if !info.Mode().IsRegular() && !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput, "cannot add resource: %s is not a file or directory", absPath)
	}

	name := filepath.Base(absPath)
	if _, ok := s.index[name]; ok {
		return "", errors.Newf(errors.ErrAlreadyExists, "resource %q is already tracked", name)
	}

	// Validation done; filesystem mutation begins here.
	storageDirName := uuid.New().String()
	versionDir := s.paths.VersionDir(storageDirName, version)
	if err := s.fs.MkdirAll(versionDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrIOFailure, "failed to create version directory %s", versionDir)
	}

	contentPath := s.paths.VersionContentPath(storageDirName, version, name)
	if err := filesystem.CopyAny(s.fs, absPath, contentPath); err != nil {
		return "", errors.Wrapf(err, errors.ErrIOFailure, "failed to copy resource content into %s", contentPath)
	}

	if err := s.fs.Symlink(versionDir, s.paths.CurrentLink(storageDirName)); err != nil {
		return "", errors.Wrapf(err, errors.ErrIOFailure, "failed to create current pointer for %q", name)
	}

	s.index[name] = &types.Resource{
		Name:           name,
		StorageDir:     storageDirName,
		CurrentVersion: version,
		Versions:       map[string]*types.VersionInfo{version: types.NewVersionInfo(dependencies...)},
	}
	if err := s.saveIndex(); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("resource", name).
		Str("version", version).
		Str("storageDir", storageDirName).
		Msg("Resource added")
	return s.paths.StorageDir(storageDirName), nil
}

// DeleteResource removes the index entry and the entire on-disk storage
// subtree of a resource. Destructive and immediate; there is no undo.
func (s *Store) DeleteResource(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resource, err := s.resource(name)
	if err != nil {
		return err
	}

	storageDir := s.paths.StorageDir(resource.StorageDir)
	delete(s.index, name)
	if err := s.fs.RemoveAll(storageDir); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove storage directory %s", storageDir)
	}
	if err := s.saveIndex(); err != nil {
		return err
	}

	s.logger.Info().Str("resource", name).Msg("Resource deleted")
	return nil
}

// resource looks up a tracked resource. Caller must hold the lock.
func (s *Store) resource(name string) (*types.Resource, error) {
	resource, ok := s.index[name]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "resource %q is not tracked", name)
	}
	return resource, nil
}

// validVersionLabel trims and validates a version label at every
// version-naming entry point: non-empty, not the reserved keyword, and
// usable as a directory name.
func validVersionLabel(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", errors.New(errors.ErrInvalidInput, "version label must be a non-empty string")
	}
	if version == types.CurrentVersionLinkName {
		return "", errors.Newf(errors.ErrInvalidOperation, "%q is a reserved version label", version)
	}
	if strings.ContainsRune(version, filepath.Separator) {
		return "", errors.Newf(errors.ErrInvalidInput, "version label %q must not contain path separators", version)
	}
	return version, nil
}

// resourceDoc is the wire form of one resource in the index document.
type resourceDoc struct {
	ParentDirname  string                `json:"parent_dirname"`
	CurrentVersion string                `json:"current_version"`
	Versions       map[string]versionDoc `json:"versions"`
}

// versionDoc is the wire form of one version's metadata.
type versionDoc struct {
	Dependencies []string `json:"dependencies"`
}

// loadIndex reads the index document, or starts empty when absent.
func (s *Store) loadIndex() error {
	s.index = make(map[string]*types.Resource)

	data, err := s.fs.ReadFile(s.paths.IndexFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to read index %s", s.paths.IndexFile())
	}

	var doc map[string]resourceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to parse index %s", s.paths.IndexFile())
	}

	for name, rd := range doc {
		resource := &types.Resource{
			Name:           name,
			StorageDir:     rd.ParentDirname,
			CurrentVersion: rd.CurrentVersion,
			Versions:       make(map[string]*types.VersionInfo, len(rd.Versions)),
		}
		for label, vd := range rd.Versions {
			resource.Versions[label] = types.NewVersionInfo(vd.Dependencies...)
		}
		s.index[name] = resource
	}
	return nil
}

// saveIndex flushes the full in-memory index to disk. No mutation is
// committed until this succeeds.
func (s *Store) saveIndex() error {
	doc := make(map[string]resourceDoc, len(s.index))
	for name, resource := range s.index {
		rd := resourceDoc{
			ParentDirname:  resource.StorageDir,
			CurrentVersion: resource.CurrentVersion,
			Versions:       make(map[string]versionDoc, len(resource.Versions)),
		}
		for label, info := range resource.Versions {
			rd.Versions[label] = versionDoc{Dependencies: info.Dependencies()}
		}
		doc[name] = rd
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode index")
	}
	if err := s.fs.WriteFile(s.paths.IndexFile(), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write index %s", s.paths.IndexFile())
	}
	return nil
}
