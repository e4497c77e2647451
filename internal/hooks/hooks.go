package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Solexma/git-side/internal/config"
	"github.com/Solexma/git-side/internal/git"
	"github.com/Solexma/git-side/internal/storage"
)

// Event is a primary-repository hook name.
type Event string

const (
	PostCommit Event = "post-commit"
	PrePush    Event = "pre-push"
	PostMerge  Event = "post-merge"
)

// DefaultEvent is used when no event is given.
const DefaultEvent = PostCommit

// Events lists the supported events in display order.
var Events = []Event{PostCommit, PrePush, PostMerge}

var (
	// ErrUnknownEvent indicates an unsupported hook name.
	ErrUnknownEvent = errors.New("unknown hook event")
	// ErrHookSlotOccupied indicates a hook not written by git-side was replaced.
	ErrHookSlotOccupied = errors.New("hook slot was occupied by another script")
)

const (
	markerStart = "# >>> git-side auto >>>"
	markerEnd   = "# <<< git-side auto <<<"
)

// ParseEvent validates name. An empty name yields DefaultEvent.
func ParseEvent(name string) (Event, error) {
	if name == "" {
		return DefaultEvent, nil
	}
	for _, e := range Events {
		if string(e) == name {
			return e, nil
		}
	}
	opts := make([]string, len(Events))
	for i, e := range Events {
		opts[i] = string(e)
	}
	return "", fmt.Errorf("%w %q: must be %s", ErrUnknownEvent, name, config.FormatOptions(opts))
}

// Dir returns the local hooks directory of the repository containing
// workDir. Linked worktrees resolve to the main repository's hooks.
func Dir(ctx context.Context, workDir string) (string, error) {
	common, err := git.CommonDir(ctx, workDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(common, "hooks"), nil
}

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	// e.g., "it's" becomes 'it'\''s'
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Script returns the hook file content for event running command.
// The command's exit status is ignored so a failing sync never blocks
// the primary repository's operation.
func Script(event Event, command string) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString(markerStart + "\n")
	fmt.Fprintf(&b, "# Installed by git-side. Remove with: git side hook uninstall --on %s\n", event)
	fmt.Fprintf(&b, "GIT_SIDE_HOOK=%s\nexport GIT_SIDE_HOOK\n", shellQuote(string(event)))
	fmt.Fprintf(&b, "%s || true\n", command)
	b.WriteString(markerEnd + "\n")
	return b.String()
}

// Result describes what Install did.
type Result struct {
	Path     string
	Replaced bool // a foreign script was overwritten
	Updated  bool // a previous git-side script was rewritten
}

// Install writes the hook script for event into dir, replacing whatever
// was there.
func Install(dir string, event Event, command string) (Result, error) {
	path := filepath.Join(dir, string(event))
	res := Result{Path: path}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if isManaged(existing) {
			res.Updated = true
		} else {
			res.Replaced = true
		}
	case !errors.Is(err, os.ErrNotExist):
		return res, fmt.Errorf("read hook %s: %w", path, err)
	}

	if err := storage.WriteFileAtomic(path, []byte(Script(event, command)), 0o755); err != nil {
		return res, fmt.Errorf("write hook %s: %w", path, err)
	}
	return res, nil
}

// Uninstall removes the git-side script for event. Missing or foreign
// scripts are left alone and reported as not removed.
func Uninstall(dir string, event Event) (bool, error) {
	path := filepath.Join(dir, string(event))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read hook %s: %w", path, err)
	}
	if !isManaged(data) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove hook %s: %w", path, err)
	}
	return true, nil
}

// Installed returns the events that have a git-side script in dir.
func Installed(dir string) []Event {
	var out []Event
	for _, e := range Events {
		data, err := os.ReadFile(filepath.Join(dir, string(e)))
		if err == nil && isManaged(data) {
			out = append(out, e)
		}
	}
	return out
}

func isManaged(script []byte) bool {
	return strings.Contains(string(script), markerStart)
}
