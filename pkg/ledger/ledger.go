package ledger

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/logging"
	"github.com/arthur-debert/unbox/pkg/paths"
	"github.com/arthur-debert/unbox/pkg/types"
	"github.com/rs/zerolog"
)

// Ledger tracks local symbolic links into the resource store and the backup
// quarantine for files those links displaced.
type Ledger struct {
	mu      sync.Mutex
	fs      types.FS
	paths   paths.Paths
	links   map[string]*types.Link
	ignored map[string]struct{}
	backups map[string]string
	logger  zerolog.Logger
}

// New creates a Ledger rooted at the local unbox directory described by p,
// creating the directory and its backups subdirectory if missing. Both index
// documents are loaded once, here; absent files mean empty ledgers.
func New(fs types.FS, p paths.Paths) (*Ledger, error) {
	if err := fs.MkdirAll(p.BackupsDir(), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to create local unbox directory %s", p.LocalRoot())
	}

	l := &Ledger{
		fs:     fs,
		paths:  p,
		logger: logging.GetLogger("ledger"),
	}
	if err := l.loadLocalIndex(); err != nil {
		return nil, err
	}
	if err := l.loadBackupIndex(); err != nil {
		return nil, err
	}

	l.logger.Debug().
		Str("localRoot", p.LocalRoot()).
		Int("links", len(l.links)).
		Int("backups", len(l.backups)).
		Msg("Link ledger initialized")
	return l, nil
}

// LinkExists reports whether the ledger tracks a link at the given path.
func (l *Ledger) LinkExists(linkPath string) bool {
	abs, err := paths.AbsPath(linkPath)
	if err != nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.links[abs]
	return ok
}

// LinkInfo returns the tracked record for a link path.
func (l *Ledger) LinkInfo(linkPath string) (*types.Link, error) {
	abs, err := paths.AbsPath(linkPath)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	link, err := l.link(abs)
	if err != nil {
		return nil, err
	}
	copied := *link
	return &copied, nil
}

// Links returns the tracked records sorted by link path.
func (l *Ledger) Links() []*types.Link {
	l.mu.Lock()
	defer l.mu.Unlock()

	links := make([]*types.Link, 0, len(l.links))
	for _, link := range l.links {
		copied := *link
		links = append(links, &copied)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].LinkPath < links[j].LinkPath })
	return links
}

// AddLink creates a symbolic link at linkPath pointing at resourcePath and
// records it. Nothing may already exist at linkPath, the resource path must
// exist, and name/version must be non-empty.
func (l *Ledger) AddLink(linkPath, resourcePath, resourceName, resourceVersion string, ignoreNewVersions bool) error {
	if resourceName == "" {
		return errors.New(errors.ErrInvalidInput, "resource name must be a non-empty string")
	}
	if resourceVersion == "" {
		return errors.New(errors.ErrInvalidInput, "resource version must be a non-empty string")
	}

	absLink, err := paths.AbsPath(linkPath)
	if err != nil {
		return err
	}
	absTarget, err := paths.AbsPath(resourcePath)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.links[absLink]; ok {
		return errors.Newf(errors.ErrAlreadyExists, "link %s is already tracked", absLink)
	}
	// Lstat, not Stat: a dangling symlink still occupies the path.
	if _, err := l.fs.Lstat(absLink); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "something already exists at %s", absLink)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to stat link path %s", absLink)
	}
	if _, err := l.fs.Stat(absTarget); err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrNotFound, "resource path does not exist: %s", absTarget)
		}
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to stat resource path %s", absTarget)
	}

	if err := l.fs.Symlink(absTarget, absLink); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to create symlink %s", absLink)
	}

	l.links[absLink] = &types.Link{
		LinkPath:          absLink,
		Target:            absTarget,
		ResourceName:      resourceName,
		ResourceVersion:   resourceVersion,
		IgnoreNewVersions: ignoreNewVersions,
	}
	if err := l.saveLocalIndex(); err != nil {
		return err
	}

	l.logger.Info().
		Str("link", absLink).
		Str("target", absTarget).
		Str("resource", resourceName).
		Str("version", resourceVersion).
		Msg("Link added")
	return nil
}

// DeleteLink removes the on-disk symbolic link and its ledger entry. A link
// already gone from disk still has its entry removed.
func (l *Ledger) DeleteLink(linkPath string) error {
	abs, err := paths.AbsPath(linkPath)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.link(abs); err != nil {
		return err
	}

	if err := l.fs.Remove(abs); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove symlink %s", abs)
	}
	delete(l.links, abs)
	if err := l.saveLocalIndex(); err != nil {
		return err
	}

	l.logger.Info().Str("link", abs).Msg("Link deleted")
	return nil
}

// SetIgnoreNewVersions mutates the auto-update flag of a tracked link.
func (l *Ledger) SetIgnoreNewVersions(linkPath string, flag bool) error {
	abs, err := paths.AbsPath(linkPath)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	link, err := l.link(abs)
	if err != nil {
		return err
	}
	link.IgnoreNewVersions = flag
	return l.saveLocalIndex()
}

// UpdateResourceVersion records a new version for every tracked link that
// references the named resource and does not opt out via
// IgnoreNewVersions. Links that point through the `current` pointer already
// resolve to the new content; this keeps the ledger's records in step.
// Returns how many links were updated.
func (l *Ledger) UpdateResourceVersion(resourceName, version string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	updated := 0
	for _, link := range l.links {
		if link.ResourceName != resourceName || link.IgnoreNewVersions {
			continue
		}
		if link.ResourceVersion != version {
			link.ResourceVersion = version
			updated++
		}
	}
	if updated == 0 {
		return 0, nil
	}
	if err := l.saveLocalIndex(); err != nil {
		return updated, err
	}

	l.logger.Debug().
		Str("resource", resourceName).
		Str("version", version).
		Int("links", updated).
		Msg("Link records updated to new version")
	return updated, nil
}

// CheckIntegrity sweeps every tracked link and classifies the failures into
// two disjoint sets: paths where no symbolic link exists on disk anymore,
// and paths where the symlink exists but its target is unreachable. The
// sweep is read-only; repair is the caller's decision.
func (l *Ledger) CheckIntegrity() (dangling, broken []string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	linkPaths := make([]string, 0, len(l.links))
	for linkPath := range l.links {
		linkPaths = append(linkPaths, linkPath)
	}
	sort.Strings(linkPaths)

	for _, linkPath := range linkPaths {
		info, lerr := l.fs.Lstat(linkPath)
		if lerr != nil {
			if os.IsNotExist(lerr) {
				dangling = append(dangling, linkPath)
				continue
			}
			return nil, nil, errors.Wrapf(lerr, errors.ErrIOFailure, "failed to stat link %s", linkPath)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			// The symlink was replaced by something else; the link itself
			// is gone.
			dangling = append(dangling, linkPath)
			continue
		}
		if _, serr := l.fs.Stat(linkPath); serr != nil {
			broken = append(broken, linkPath)
		}
	}
	return dangling, broken, nil
}

// Ignore records a resource path as deliberately unmapped.
func (l *Ledger) Ignore(resourcePath string) error {
	abs, err := paths.AbsPath(resourcePath)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ignored[abs]; ok {
		return nil
	}
	l.ignored[abs] = struct{}{}
	return l.saveLocalIndex()
}

// Unignore removes a resource path from the ignored set.
func (l *Ledger) Unignore(resourcePath string) error {
	abs, err := paths.AbsPath(resourcePath)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ignored[abs]; !ok {
		return nil
	}
	delete(l.ignored, abs)
	return l.saveLocalIndex()
}

// IgnoredResources returns the sorted ignored resource paths.
func (l *Ledger) IgnoredResources() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ignored := make([]string, 0, len(l.ignored))
	for path := range l.ignored {
		ignored = append(ignored, path)
	}
	sort.Strings(ignored)
	return ignored
}

// PruneIgnored drops ignored entries whose resource path is no longer among
// the existing resource paths, returning how many were removed.
func (l *Ledger) PruneIgnored(existing []string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	keep := make(map[string]struct{}, len(existing))
	for _, path := range existing {
		keep[path] = struct{}{}
	}

	removed := 0
	for path := range l.ignored {
		if _, ok := keep[path]; !ok {
			delete(l.ignored, path)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	if err := l.saveLocalIndex(); err != nil {
		return removed, err
	}

	l.logger.Debug().Int("removed", removed).Msg("Pruned ignored resources")
	return removed, nil
}

// link looks up a tracked link. Caller must hold the lock.
func (l *Ledger) link(absPath string) (*types.Link, error) {
	link, ok := l.links[absPath]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "link %s is not tracked", absPath)
	}
	return link, nil
}

// linkDoc is the wire form of one tracked link.
type linkDoc struct {
	LinkTarget        string `json:"link_target"`
	Name              string `json:"name"`
	Version           string `json:"version"`
	IgnoreNewVersions bool   `json:"ignore_new_versions"`
}

// localIndexDoc is the wire form of the local index document.
type localIndexDoc struct {
	UnboxedResources map[string]linkDoc `json:"unboxed_resources"`
	IgnoredResources []string           `json:"ignored_resources"`
}

// loadLocalIndex reads the local index document, or starts empty when absent.
func (l *Ledger) loadLocalIndex() error {
	l.links = make(map[string]*types.Link)
	l.ignored = make(map[string]struct{})

	data, err := l.fs.ReadFile(l.paths.LocalIndexFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to read local index %s", l.paths.LocalIndexFile())
	}

	var doc localIndexDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to parse local index %s", l.paths.LocalIndexFile())
	}

	for linkPath, ld := range doc.UnboxedResources {
		l.links[linkPath] = &types.Link{
			LinkPath:          linkPath,
			Target:            ld.LinkTarget,
			ResourceName:      ld.Name,
			ResourceVersion:   ld.Version,
			IgnoreNewVersions: ld.IgnoreNewVersions,
		}
	}
	for _, path := range doc.IgnoredResources {
		l.ignored[path] = struct{}{}
	}
	return nil
}

// saveLocalIndex flushes the link and ignored records to disk.
func (l *Ledger) saveLocalIndex() error {
	doc := localIndexDoc{
		UnboxedResources: make(map[string]linkDoc, len(l.links)),
		IgnoredResources: make([]string, 0, len(l.ignored)),
	}
	for linkPath, link := range l.links {
		doc.UnboxedResources[linkPath] = linkDoc{
			LinkTarget:        link.Target,
			Name:              link.ResourceName,
			Version:           link.ResourceVersion,
			IgnoreNewVersions: link.IgnoreNewVersions,
		}
	}
	for path := range l.ignored {
		doc.IgnoredResources = append(doc.IgnoredResources, path)
	}
	sort.Strings(doc.IgnoredResources)

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode local index")
	}
	if err := l.fs.WriteFile(l.paths.LocalIndexFile(), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to write local index %s", l.paths.LocalIndexFile())
	}
	return nil
}
