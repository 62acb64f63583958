package types

import (
	"sort"
)

// CurrentVersionLinkName is the reserved name of the symlink inside a
// resource's storage directory that points at the live version directory.
// It is also a reserved keyword: no version may carry this label.
const CurrentVersionLinkName = "current"

// Resource represents a named artifact tracked by the resource store.
type Resource struct {
	// Name is the unique identifier, derived from the original filename
	Name string

	// StorageDir is the generated directory name under the volume's unbox
	// directory that isolates this resource's versions
	StorageDir string

	// CurrentVersion is the version label the `current` pointer targets.
	// Invariant: always a key of Versions.
	CurrentVersion string

	// Versions maps version label -> per-version metadata. Non-empty for
	// as long as the resource exists.
	Versions map[string]*VersionInfo
}

// HasVersion reports whether the resource carries the given version label.
func (r *Resource) HasVersion(label string) bool {
	_, ok := r.Versions[label]
	return ok
}

// VersionLabels returns the sorted set of version labels.
func (r *Resource) VersionLabels() []string {
	labels := make([]string, 0, len(r.Versions))
	for label := range r.Versions {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// VersionInfo carries the metadata for a single version of a resource.
type VersionInfo struct {
	// dependencies is a set of opaque dependency labels. No cycle checking,
	// no semantic interpretation.
	dependencies map[string]struct{}
}

// NewVersionInfo creates a VersionInfo with the given dependency labels.
// Duplicates collapse.
func NewVersionInfo(dependencies ...string) *VersionInfo {
	v := &VersionInfo{dependencies: make(map[string]struct{}, len(dependencies))}
	for _, dep := range dependencies {
		v.dependencies[dep] = struct{}{}
	}
	return v
}

// Clone returns an independent copy of the version info. Mutating the copy's
// dependency set never affects the original.
func (v *VersionInfo) Clone() *VersionInfo {
	clone := &VersionInfo{dependencies: make(map[string]struct{}, len(v.dependencies))}
	for dep := range v.dependencies {
		clone.dependencies[dep] = struct{}{}
	}
	return clone
}

// HasDependency reports whether the dependency label is present.
func (v *VersionInfo) HasDependency(name string) bool {
	_, ok := v.dependencies[name]
	return ok
}

// AddDependency adds a dependency label to the set. Returns false if it was
// already present.
func (v *VersionInfo) AddDependency(name string) bool {
	if _, ok := v.dependencies[name]; ok {
		return false
	}
	v.dependencies[name] = struct{}{}
	return true
}

// RemoveDependency removes a dependency label from the set. Returns false if
// it was not present.
func (v *VersionInfo) RemoveDependency(name string) bool {
	if _, ok := v.dependencies[name]; !ok {
		return false
	}
	delete(v.dependencies, name)
	return true
}

// Dependencies returns the sorted dependency labels.
func (v *VersionInfo) Dependencies() []string {
	deps := make([]string, 0, len(v.dependencies))
	for dep := range v.dependencies {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// ResourceInfo is the read-only summary returned by store lookups.
type ResourceInfo struct {
	StorageDir     string
	CurrentVersion string
	Versions       []string
}
