package store

import (
	"strings"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/filesystem"
	"github.com/arthur-debert/unbox/pkg/types"
)

// VersionInfo returns the sorted dependency labels of a resource version.
func (s *Store) VersionInfo(name, version string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, info, err := s.version(name, version)
	if err != nil {
		return nil, err
	}
	return info.Dependencies(), nil
}

// CopyVersion creates newVersion by deep-copying the content of
// sourceVersion. The literal label "current" resolves through the current
// pointer. The new version's dependency set is cloned from the source when
// copyDependencies is true, empty otherwise; the two sets never alias.
func (s *Store) CopyVersion(name, sourceVersion, newVersion string, copyDependencies bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	newVersion, err := validVersionLabel(newVersion)
	if err != nil {
		return err
	}

	resource, err := s.resource(name)
	if err != nil {
		return err
	}

	sourceLabel := sourceVersion
	if sourceLabel == types.CurrentVersionLinkName {
		sourceLabel = resource.CurrentVersion
	}
	sourceInfo, ok := resource.Versions[sourceLabel]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "resource %q has no version %q", name, sourceVersion)
	}
	if resource.HasVersion(newVersion) {
		return errors.Newf(errors.ErrAlreadyExists, "resource %q already has version %q", name, newVersion)
	}

	sourceContent := s.paths.VersionContentPath(resource.StorageDir, sourceLabel, resource.Name)
	newVersionDir := s.paths.VersionDir(resource.StorageDir, newVersion)
	if err := s.fs.MkdirAll(newVersionDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to create version directory %s", newVersionDir)
	}
	newContent := s.paths.VersionContentPath(resource.StorageDir, newVersion, resource.Name)
	if err := filesystem.CopyAny(s.fs, sourceContent, newContent); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to copy version content into %s", newContent)
	}

	if copyDependencies {
		resource.Versions[newVersion] = sourceInfo.Clone()
	} else {
		resource.Versions[newVersion] = types.NewVersionInfo()
	}
	if err := s.saveIndex(); err != nil {
		return err
	}

	s.logger.Info().
		Str("resource", name).
		Str("source", sourceLabel).
		Str("version", newVersion).
		Msg("Version copied")
	return nil
}

// AddVersionDependency adds a dependency label to a resource version.
// Idempotent: adding a label already present is a no-op and skips the index
// flush.
func (s *Store) AddVersionDependency(name, version, dependency string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dependency, err := validDependencyName(dependency)
	if err != nil {
		return err
	}
	_, info, err := s.version(name, version)
	if err != nil {
		return err
	}

	if !info.AddDependency(dependency) {
		return nil
	}
	return s.saveIndex()
}

// DeleteVersionDependency removes a dependency label from a resource
// version. Idempotent: removing an absent label is a no-op and skips the
// index flush.
func (s *Store) DeleteVersionDependency(name, version, dependency string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dependency, err := validDependencyName(dependency)
	if err != nil {
		return err
	}
	_, info, err := s.version(name, version)
	if err != nil {
		return err
	}

	if !info.RemoveDependency(dependency) {
		return nil
	}
	return s.saveIndex()
}

// ChangeCurrentVersion re-points the `current` symlink at the named
// version's directory and records the change in the index. The pointer is
// rewritten remove-then-recreate.
func (s *Store) ChangeCurrentVersion(name, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resource, _, err := s.version(name, version)
	if err != nil {
		return err
	}

	currentLink := s.paths.CurrentLink(resource.StorageDir)
	if err := s.fs.Remove(currentLink); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove current pointer for %q", name)
	}
	if err := s.fs.Symlink(s.paths.VersionDir(resource.StorageDir, version), currentLink); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to recreate current pointer for %q", name)
	}

	resource.CurrentVersion = version
	if err := s.saveIndex(); err != nil {
		return err
	}

	s.logger.Info().
		Str("resource", name).
		Str("version", version).
		Msg("Current version changed")
	return nil
}

// DeleteVersion removes a version's directory and index entry. The current
// version must be re-pointed first, and the last remaining version of a
// resource can never be deleted.
func (s *Store) DeleteVersion(name, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resource, _, err := s.version(name, version)
	if err != nil {
		return err
	}
	if version == resource.CurrentVersion {
		return errors.Newf(errors.ErrInvalidOperation,
			"cannot delete version %q of %q: it is the current version", version, name)
	}
	if len(resource.Versions) <= 1 {
		return errors.Newf(errors.ErrInvalidOperation,
			"cannot delete the only version of %q", name)
	}

	versionDir := s.paths.VersionDir(resource.StorageDir, version)
	if err := s.fs.RemoveAll(versionDir); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove version directory %s", versionDir)
	}
	delete(resource.Versions, version)
	if err := s.saveIndex(); err != nil {
		return err
	}

	s.logger.Info().
		Str("resource", name).
		Str("version", version).
		Msg("Version deleted")
	return nil
}

// version looks up a resource and one of its versions. Caller must hold the
// lock.
func (s *Store) version(name, label string) (*types.Resource, *types.VersionInfo, error) {
	resource, err := s.resource(name)
	if err != nil {
		return nil, nil, err
	}
	info, ok := resource.Versions[label]
	if !ok {
		return nil, nil, errors.Newf(errors.ErrNotFound, "resource %q has no version %q", name, label)
	}
	return resource, info, nil
}

// validDependencyName trims and validates a dependency label.
func validDependencyName(dependency string) (string, error) {
	dependency = strings.TrimSpace(dependency)
	if dependency == "" {
		return "", errors.New(errors.ErrInvalidInput, "dependency name must be a non-empty string")
	}
	return dependency, nil
}
