// Package commands provides the high-level command implementations for
// unbox.
//
// This is the orchestration layer between the CLI and the core components:
// each command validates its options, drives the resource store and the link
// ledger, and returns a result struct for the CLI to render. Commands never
// print; rendering belongs to the caller.
package commands

import (
	"github.com/arthur-debert/unbox/pkg/config"
	"github.com/arthur-debert/unbox/pkg/filesystem"
	"github.com/arthur-debert/unbox/pkg/ledger"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/arthur-debert/unbox/pkg/store"
	"github.com/arthur-debert/unbox/pkg/types"
)

// Env bundles the collaborators every command operates on.
type Env struct {
	FS     types.FS
	Config *config.Config
	Paths  paths.Paths
	Store  *store.Store
	Ledger *ledger.Ledger
}

// NewEnv builds an Env from configuration. A nil fs means the OS filesystem.
func NewEnv(cfg *config.Config, fs types.FS) (*Env, error) {
	if fs == nil {
		fs = filesystem.NewOS()
	}

	p, err := paths.New(cfg.VolumeDirectory, cfg.LocalDirectory)
	if err != nil {
		return nil, err
	}
	st, err := store.New(fs, p)
	if err != nil {
		return nil, err
	}
	ld, err := ledger.New(fs, p)
	if err != nil {
		return nil, err
	}

	return &Env{
		FS:     fs,
		Config: cfg,
		Paths:  p,
		Store:  st,
		Ledger: ld,
	}, nil
}
