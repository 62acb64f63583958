package commands

import (
	"encoding/json"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/unbox/pkg/errors"
	"github.com/arthur-debert/unbox/pkg/logging"
)

// Editor takes the user through an edit of the file at path and returns when
// the edit is done. Tests inject a scripted implementation.
type Editor interface {
	Edit(path string) error
}

// ExecEditor runs the user's preferred editor ($EDITOR, falling back to vim)
// attached to the terminal.
type ExecEditor struct{}

// Edit implements Editor.
func (ExecEditor) Edit(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrIOFailure, "editor %q failed", editor)
	}
	return nil
}

// FreshOptions defines the options for the Fresh command.
type FreshOptions struct {
	// Editor drives the interactive mapping round trip.
	Editor Editor
}

// FreshResult reports the outcome of a fresh setup.
type FreshResult struct {
	// Linked are the links created, in discovery order.
	Linked []LinkResult
	// Ignored are the discovered paths the user left unmapped.
	Ignored []string
}

// Fresh rebuilds the local mapping from scratch: existing links are removed
// (restoring displaced originals), candidate resources are discovered under
// the resources directory, and the user edits a JSON document mapping each
// candidate path to a desired local link path. Candidates left blank go on
// the ignored list; mapped candidates are ingested into the store if new and
// linked.
func Fresh(env *Env, opts FreshOptions) (*FreshResult, error) {
	log := logging.GetLogger("commands.fresh")
	log.Debug().Msg("Executing command")

	if env.Config.ResourcesDirectory == "" {
		return nil, errors.New(errors.ErrInvalidInput, "resources directory is not configured")
	}
	editor := opts.Editor
	if editor == nil {
		editor = ExecEditor{}
	}

	discovered, err := DiscoverResources(env.FS, env.Config.ResourcesDirectory)
	if err != nil {
		return nil, err
	}

	// Starting fresh: drop every existing link, restoring what it displaced.
	for _, link := range env.Ledger.Links() {
		if _, err := Unlink(env, UnlinkOptions{LinkPath: link.LinkPath}); err != nil {
			return nil, err
		}
	}
	if _, err := env.Ledger.PruneIgnored(discovered); err != nil {
		return nil, err
	}

	desired, err := editMapping(editor, discovered)
	if err != nil {
		return nil, err
	}

	result := &FreshResult{}
	for _, path := range discovered {
		target := strings.TrimSpace(desired[path])
		if target == "" {
			if err := env.Ledger.Ignore(path); err != nil {
				return nil, err
			}
			result.Ignored = append(result.Ignored, path)
			continue
		}

		name := resourceName(path)
		if !env.Store.ResourceExists(name) {
			if _, err := AddResource(env, AddResourceOptions{Path: path}); err != nil {
				return nil, err
			}
		}
		linked, err := Link(env, LinkOptions{LinkPath: target, ResourceName: name})
		if err != nil {
			return nil, err
		}
		result.Linked = append(result.Linked, *linked)
	}
	return result, nil
}

// editMapping writes the candidate paths to a temp JSON file, lets the
// editor fill in the desired link path per candidate, and reads the result
// back.
func editMapping(editor Editor, discovered []string) (map[string]string, error) {
	mapping := make(map[string]string, len(discovered))
	for _, path := range discovered {
		mapping[path] = ""
	}

	data, err := json.MarshalIndent(mapping, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode mapping document")
	}

	tmp, err := os.CreateTemp("", "unbox-mapping-*.json")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to create mapping temp file")
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to write mapping temp file")
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to close mapping temp file")
	}

	if err := editor.Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIOFailure, "failed to read edited mapping")
	}
	desired := make(map[string]string)
	if err := json.Unmarshal(edited, &desired); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "edited mapping is not valid JSON")
	}
	return desired, nil
}
