package commands

import (
	"os"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/paths"
)

// LinkOptions defines the options for the Link command.
type LinkOptions struct {
	// LinkPath is the local path where the symlink should live.
	LinkPath string
	// ResourceName is the tracked resource to link.
	ResourceName string
	// Version pins the link to a named version. Empty links through the
	// current pointer, so the link follows later version changes.
	Version string
	// IgnoreNewVersions keeps the link's record pinned when the resource's
	// current version changes.
	IgnoreNewVersions bool
}

// LinkResult reports the created link.
type LinkResult struct {
	LinkPath string
	Target   string
	Version  string
	BackedUp bool
}

// Link creates a tracked symlink to a resource. A regular file or directory
// already at the link path is quarantined first so the link can be created;
// an existing tracked link is an error.
func Link(env *Env, opts LinkOptions) (*LinkResult, error) {
	log := logging.GetLogger("commands.link")
	log.Debug().
		Str("link", opts.LinkPath).
		Str("resource", opts.ResourceName).
		Str("version", opts.Version).
		Msg("Executing command")

	target, err := env.Store.ResourcePath(opts.ResourceName, opts.Version)
	if err != nil {
		return nil, err
	}

	version := opts.Version
	if version == "" {
		info, err := env.Store.ResourceInfo(opts.ResourceName)
		if err != nil {
			return nil, err
		}
		version = info.CurrentVersion
	}

	absLink, err := paths.AbsPath(opts.LinkPath)
	if err != nil {
		return nil, err
	}
	if env.Ledger.LinkExists(absLink) {
		return nil, errors.Newf(errors.ErrAlreadyExists, "link %s is already tracked", absLink)
	}

	// Displace whatever occupies the link path into quarantine. The backup
	// is keyed by the link path, so unlink can restore it later.
	backedUp := false
	if _, err := env.FS.Lstat(absLink); err == nil {
		if err := env.Ledger.BackupAdd(absLink); err != nil {
			return nil, err
		}
		backedUp = true
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to stat link path %s", absLink)
	}

	if err := env.Ledger.AddLink(absLink, target, opts.ResourceName, version, opts.IgnoreNewVersions); err != nil {
		return nil, err
	}

	return &LinkResult{
		LinkPath: absLink,
		Target:   target,
		Version:  version,
		BackedUp: backedUp,
	}, nil
}

// UnlinkOptions defines the options for the Unlink command.
type UnlinkOptions struct {
	// LinkPath is the tracked link to remove.
	LinkPath string
	// KeepBackup leaves any quarantined original in the backup system
	// instead of restoring it.
	KeepBackup bool
}

// UnlinkResult reports the removed link.
type UnlinkResult struct {
	LinkPath string
	Restored bool
}

// Unlink removes a tracked symlink and, unless told otherwise, restores the
// original file the link displaced.
func Unlink(env *Env, opts UnlinkOptions) (*UnlinkResult, error) {
	log := logging.GetLogger("commands.unlink")
	log.Debug().Str("link", opts.LinkPath).Msg("Executing command")

	absLink, err := paths.AbsPath(opts.LinkPath)
	if err != nil {
		return nil, err
	}
	if err := env.Ledger.DeleteLink(absLink); err != nil {
		return nil, err
	}

	restored := false
	if !opts.KeepBackup && env.Ledger.BackupExists(absLink) {
		if err := env.Ledger.BackupRestore(absLink); err != nil {
			return nil, err
		}
		restored = true
	}

	return &UnlinkResult{LinkPath: absLink, Restored: restored}, nil
}

// PinOptions defines the options for the Pin command.
type PinOptions struct {
	// LinkPath is the tracked link to mutate.
	LinkPath string
	// Follow clears the pin so the link's record follows version changes
	// again.
	Follow bool
}

// Pin stops a tracked link's record from following the resource's current
// version, or re-enables following with Follow set. The symlink on disk is
// untouched; only the ledger record changes.
func Pin(env *Env, opts PinOptions) error {
	log := logging.GetLogger("commands.pin")
	log.Debug().Str("link", opts.LinkPath).Bool("follow", opts.Follow).Msg("Executing command")

	return env.Ledger.SetIgnoreNewVersions(opts.LinkPath, !opts.Follow)
}
