package commands

import (
	"path/filepath"

	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/arthur-debert/unbox/pkg/store"
)

// AddResourceOptions defines the options for the AddResource command.
type AddResourceOptions struct {
	// Path is the local file or directory to ingest.
	Path string
	// Version is the initial version label; empty means the store default.
	Version string
	// Dependencies are the dependency labels of the initial version.
	Dependencies []string
}

// AddResourceResult reports what was added.
type AddResourceResult struct {
	Name        string
	Version     string
	StoragePath string
}

// AddResource deep-copies a local file or directory into the store under its
// basename.
func AddResource(env *Env, opts AddResourceOptions) (*AddResourceResult, error) {
	log := logging.GetLogger("commands.add")
	log.Debug().Str("path", opts.Path).Str("version", opts.Version).Msg("Executing command")

	storagePath, err := env.Store.AddResource(opts.Path, opts.Version, opts.Dependencies)
	if err != nil {
		return nil, err
	}

	version := opts.Version
	if version == "" {
		version = store.DefaultVersion
	}
	return &AddResourceResult{
		Name:        resourceName(opts.Path),
		Version:     version,
		StoragePath: storagePath,
	}, nil
}

// resourceName derives the tracked name from a local path, the same way the
// store does at add time.
func resourceName(path string) string {
	if abs, err := paths.AbsPath(path); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(path)
}

// RemoveResourceOptions defines the options for the RemoveResource command.
type RemoveResourceOptions struct {
	// Name is the tracked resource to delete.
	Name string
	// DropLinks also deletes any local links that reference the resource.
	DropLinks bool
}

// RemoveResource deletes a resource and its whole storage subtree. With
// DropLinks set, local links referencing it are deleted first so they don't
// turn into broken targets.
func RemoveResource(env *Env, opts RemoveResourceOptions) error {
	log := logging.GetLogger("commands.remove")
	log.Debug().Str("resource", opts.Name).Msg("Executing command")

	if opts.DropLinks {
		for _, link := range env.Ledger.Links() {
			if link.ResourceName != opts.Name {
				continue
			}
			if err := env.Ledger.DeleteLink(link.LinkPath); err != nil {
				return err
			}
		}
	}
	return env.Store.DeleteResource(opts.Name)
}

// ResourceListing is one row of the List result.
type ResourceListing struct {
	Name           string
	CurrentVersion string
	Versions       []string
}

// ListResult carries everything the list command reports.
type ListResult struct {
	Resources []ResourceListing
	Backups   []string
}

// List returns the tracked resources with their versions, plus the active
// backup entries.
func List(env *Env) (*ListResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Msg("Executing command")

	result := &ListResult{}
	for _, backup := range env.Ledger.ListBackups() {
		result.Backups = append(result.Backups, backup.OriginalPath)
	}
	for _, name := range env.Store.Resources() {
		info, err := env.Store.ResourceInfo(name)
		if err != nil {
			return nil, err
		}
		result.Resources = append(result.Resources, ResourceListing{
			Name:           name,
			CurrentVersion: info.CurrentVersion,
			Versions:       info.Versions,
		})
	}
	return result, nil
}
