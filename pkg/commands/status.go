package commands

import (
	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/types"
)

// StatusResult carries the integrity sweep plus the ledger's view of the
// local machine.
type StatusResult struct {
	// Links are all tracked links, sorted by link path.
	Links []*types.Link
	// Dangling are tracked paths where no symbolic link exists on disk.
	Dangling []string
	// Broken are tracked symlinks whose target is unreachable.
	Broken []string
	// Backups are the original paths of active quarantine entries.
	Backups []string
	// Ignored are the resource paths deliberately left unmapped.
	Ignored []string
}

// Healthy reports whether the sweep found nothing wrong.
func (r *StatusResult) Healthy() bool {
	return len(r.Dangling) == 0 && len(r.Broken) == 0
}

// Status runs the read-only integrity sweep. Nothing is repaired here;
// unlink and link are the explicit repair operations.
func Status(env *Env) (*StatusResult, error) {
	log := logging.GetLogger("commands.status")
	log.Debug().Msg("Executing command")

	dangling, broken, err := env.Ledger.CheckIntegrity()
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Links:    env.Ledger.Links(),
		Dangling: dangling,
		Broken:   broken,
		Ignored:  env.Ledger.IgnoredResources(),
	}
	for _, backup := range env.Ledger.ListBackups() {
		result.Backups = append(result.Backups, backup.OriginalPath)
	}
	return result, nil
}
