package commands

import (
	"github.com/arthur-debert/unbox/pkg/logging"
)

// CopyVersionOptions defines the options for the CopyVersion command.
type CopyVersionOptions struct {
	// Name is the tracked resource.
	Name string
	// Source is the version to copy from; "current" resolves through the
	// pointer.
	Source string
	// NewVersion is the label of the version to create.
	NewVersion string
	// CopyDependencies clones the source's dependency set into the new
	// version.
	CopyDependencies bool
}

// CopyVersion creates a new version of a resource from an existing one.
func CopyVersion(env *Env, opts CopyVersionOptions) error {
	log := logging.GetLogger("commands.versions")
	log.Debug().
		Str("resource", opts.Name).
		Str("source", opts.Source).
		Str("new", opts.NewVersion).
		Msg("Executing command")

	return env.Store.CopyVersion(opts.Name, opts.Source, opts.NewVersion, opts.CopyDependencies)
}

// UseVersionOptions defines the options for the UseVersion command.
type UseVersionOptions struct {
	// Name is the tracked resource.
	Name string
	// Version is the version the current pointer should target.
	Version string
}

// UseVersionResult reports the pointer change.
type UseVersionResult struct {
	Name         string
	Version      string
	LinksUpdated int
}

// UseVersion re-points a resource's current pointer and brings the records
// of non-pinned local links along.
func UseVersion(env *Env, opts UseVersionOptions) (*UseVersionResult, error) {
	log := logging.GetLogger("commands.versions")
	log.Debug().Str("resource", opts.Name).Str("version", opts.Version).Msg("Executing command")

	if err := env.Store.ChangeCurrentVersion(opts.Name, opts.Version); err != nil {
		return nil, err
	}
	updated, err := env.Ledger.UpdateResourceVersion(opts.Name, opts.Version)
	if err != nil {
		return nil, err
	}

	return &UseVersionResult{
		Name:         opts.Name,
		Version:      opts.Version,
		LinksUpdated: updated,
	}, nil
}

// DeleteVersionOptions defines the options for the DeleteVersion command.
type DeleteVersionOptions struct {
	Name    string
	Version string
}

// DeleteVersion removes a non-current, non-last version of a resource.
func DeleteVersion(env *Env, opts DeleteVersionOptions) error {
	log := logging.GetLogger("commands.versions")
	log.Debug().Str("resource", opts.Name).Str("version", opts.Version).Msg("Executing command")

	return env.Store.DeleteVersion(opts.Name, opts.Version)
}

// DependencyOptions defines the options for dependency mutation commands.
type DependencyOptions struct {
	Name       string
	Version    string
	Dependency string
}

// AddDependency adds a dependency label to a resource version.
func AddDependency(env *Env, opts DependencyOptions) error {
	log := logging.GetLogger("commands.deps")
	log.Debug().
		Str("resource", opts.Name).
		Str("version", opts.Version).
		Str("dependency", opts.Dependency).
		Msg("Executing command")

	return env.Store.AddVersionDependency(opts.Name, opts.Version, opts.Dependency)
}

// RemoveDependency removes a dependency label from a resource version.
func RemoveDependency(env *Env, opts DependencyOptions) error {
	log := logging.GetLogger("commands.deps")
	log.Debug().
		Str("resource", opts.Name).
		Str("version", opts.Version).
		Str("dependency", opts.Dependency).
		Msg("Executing command")

	return env.Store.DeleteVersionDependency(opts.Name, opts.Version, opts.Dependency)
}
