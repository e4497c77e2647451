// Package tracked manages the set of declared tracked roots of a project.
//
// The set is stored inside the shadow store, one work-tree relative path per
// line, so declaring a root never writes to the work tree.
package tracked

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Solexma/git-side/internal/storage"
)

// ErrPathOutsideProject indicates a path that cannot be tracked: it lies
// outside the work tree or inside the primary .git directory.
var ErrPathOutsideProject = errors.New("path is outside the project")

// Set is the collection of tracked roots, relative to the work tree with
// forward slashes.
type Set struct {
	file  string
	paths []string // sorted, unique
}

// Load reads the set stored at file. A missing file yields an empty set.
func Load(file string) (*Set, error) {
	s := &Set{file: file}

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read tracked paths: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tracked paths: %w", err)
	}
	return s, nil
}

// Save writes the set back to its file atomically.
func (s *Set) Save() error {
	var buf bytes.Buffer
	for _, p := range s.paths {
		buf.WriteString(p)
		buf.WriteByte('\n')
	}
	if err := storage.WriteFileAtomic(s.file, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save tracked paths: %w", err)
	}
	return nil
}

// Add inserts p. Returns false if it was already tracked.
func (s *Set) Add(p string) bool {
	i, found := slices.BinarySearch(s.paths, p)
	if found {
		return false
	}
	s.paths = slices.Insert(s.paths, i, p)
	return true
}

// Remove drops p and every root nested under it. Returns the removed roots.
func (s *Set) Remove(p string) []string {
	var removed []string
	s.paths = slices.DeleteFunc(s.paths, func(q string) bool {
		if q == p || isUnder(q, p) {
			removed = append(removed, q)
			return true
		}
		return false
	})
	return removed
}

// Contains reports whether p is a declared root.
func (s *Set) Contains(p string) bool {
	_, found := slices.BinarySearch(s.paths, p)
	return found
}

// Covers reports whether p is a root or lies under one.
func (s *Set) Covers(p string) bool {
	for _, root := range s.paths {
		if p == root || isUnder(p, root) {
			return true
		}
	}
	return false
}

// Under returns the roots nested strictly under dir.
func (s *Set) Under(dir string) []string {
	var out []string
	for _, q := range s.paths {
		if isUnder(q, dir) {
			out = append(out, q)
		}
	}
	return out
}

// Paths returns a copy of the roots in sorted order.
func (s *Set) Paths() []string {
	return slices.Clone(s.paths)
}

// Len returns the number of roots.
func (s *Set) Len() int {
	return len(s.paths)
}

// isUnder reports whether p lies strictly below dir. An empty dir is the
// work tree root.
func isUnder(p, dir string) bool {
	if dir == "." || dir == "" {
		return p != dir
	}
	return strings.HasPrefix(p, dir+"/")
}

// Normalize turns a command-line path into a work-tree relative path with
// forward slashes. Relative args are resolved against cwd. The work tree
// root itself normalizes to ".".
func Normalize(workTree, cwd, arg string) (string, error) {
	p := arg
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	p = filepath.Clean(p)

	rel, ok := relTo(workTree, p)
	if !ok {
		// cwd may reach the work tree through a symlink.
		resolved, err := filepath.EvalSymlinks(p)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrPathOutsideProject, arg)
		}
		if rel, ok = relTo(workTree, resolved); !ok {
			return "", fmt.Errorf("%w: %s", ErrPathOutsideProject, arg)
		}
	}
	if rel == ".git" || strings.HasPrefix(rel, ".git/") {
		return "", fmt.Errorf("%w: %s is inside .git", ErrPathOutsideProject, arg)
	}
	return path.Clean(rel), nil
}

func relTo(base, p string) (string, bool) {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}
