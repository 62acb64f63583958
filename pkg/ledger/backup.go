package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/filesystem"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/arthur-debert/unbox/pkg/types"
	"github.com/google/uuid"
)

// BackupExists reports whether the path has an active backup entry.
func (l *Ledger) BackupExists(path string) bool {
	abs, err := paths.AbsPath(path)
	if err != nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.backups[abs]
	return ok
}

// ListBackups returns the active backup entries sorted by original path.
func (l *Ledger) ListBackups() []types.BackupEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	backedUp := make([]types.BackupEntry, 0, len(l.backups))
	for path, id := range l.backups {
		backedUp = append(backedUp, types.BackupEntry{OriginalPath: path, QuarantineID: id})
	}
	sort.Slice(backedUp, func(i, j int) bool { return backedUp[i].OriginalPath < backedUp[j].OriginalPath })
	return backedUp
}

// BackupAdd moves the file or directory at path into a fresh quarantine
// directory, preserving its basename, and records the entry. At most one
// active backup per original path.
func (l *Ledger) BackupAdd(path string) error {
	abs, err := paths.AbsPath(path)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.backups[abs]; ok {
		return errors.Newf(errors.ErrAlreadyExists, "%s is already backed up", abs)
	}
	if _, err := l.fs.Lstat(abs); err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrNotFound, "cannot back up %s: it does not exist", abs)
		}
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to stat %s", abs)
	}

	id := uuid.New().String()
	quarantineDir := l.paths.QuarantineDir(id)
	if err := l.fs.MkdirAll(quarantineDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to create quarantine directory %s", quarantineDir)
	}
	if err := filesystem.MoveAll(l.fs, abs, filepath.Join(quarantineDir, filepath.Base(abs))); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to move %s into quarantine", abs)
	}

	l.backups[abs] = id
	if err := l.saveBackupIndex(); err != nil {
		return err
	}

	l.logger.Info().Str("path", abs).Str("quarantine", id).Msg("Backup added")
	return nil
}

// BackupRestore moves a quarantined file or directory back to its original
// path and removes the now-empty quarantine directory.
func (l *Ledger) BackupRestore(path string) error {
	abs, err := paths.AbsPath(path)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.backups[abs]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "no backup entry for %s", abs)
	}

	quarantineDir := l.paths.QuarantineDir(id)
	if err := filesystem.MoveAll(l.fs, filepath.Join(quarantineDir, filepath.Base(abs)), abs); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to restore %s from quarantine", abs)
	}
	if err := l.fs.Remove(quarantineDir); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove quarantine directory %s", quarantineDir)
	}

	delete(l.backups, abs)
	if err := l.saveBackupIndex(); err != nil {
		return err
	}

	l.logger.Info().Str("path", abs).Msg("Backup restored")
	return nil
}

// BackupDelete discards a quarantined file or directory permanently,
// removing its quarantine directory.
func (l *Ledger) BackupDelete(path string) error {
	abs, err := paths.AbsPath(path)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.backups[abs]
	if !ok {
		return errors.Newf(errors.ErrNotFound, "no backup entry for %s", abs)
	}

	quarantineDir := l.paths.QuarantineDir(id)
	if err := l.fs.RemoveAll(quarantineDir); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove quarantine directory %s", quarantineDir)
	}

	delete(l.backups, abs)
	if err := l.saveBackupIndex(); err != nil {
		return err
	}

	l.logger.Info().Str("path", abs).Msg("Backup deleted")
	return nil
}

// loadBackupIndex reads the backup index document, or starts empty when
// absent.
func (l *Ledger) loadBackupIndex() error {
	l.backups = make(map[string]string)

	data, err := l.fs.ReadFile(l.paths.BackupIndexFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to read backup index %s", l.paths.BackupIndexFile())
	}
	if err := json.Unmarshal(data, &l.backups); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to parse backup index %s", l.paths.BackupIndexFile())
	}
	return nil
}

// saveBackupIndex flushes the backup records to disk.
func (l *Ledger) saveBackupIndex() error {
	data, err := json.MarshalIndent(l.backups, "", "    ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode backup index")
	}
	if err := l.fs.WriteFile(l.paths.BackupIndexFile(), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write backup index %s", l.paths.BackupIndexFile())
	}
	return nil
}
