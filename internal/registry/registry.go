// Package registry manages the location registry at
// $XDG_CONFIG_HOME/git-side/locations.toml.
//
// The registry maps a project identity to the base directory that holds its
// shadow store. Entries are created on first use or by "git side init
// --path" and are overwritten, never merged.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/gofrs/flock"

	"github.com/Solexma/git-side/internal/identity"
	"github.com/Solexma/git-side/internal/storage"
)

// ErrConfigCorrupt indicates the registry file exists but cannot be trusted.
var ErrConfigCorrupt = errors.New("location registry is corrupt")

// Registry holds all known store locations
type Registry struct {
	Locations map[string]string `toml:"locations"` // identity -> base directory

	path string
}

// Load reads the registry from path.
// Returns an empty registry if the file doesn't exist.
func Load(path string) (*Registry, error) {
	reg := &Registry{Locations: map[string]string{}, path: path}

	if err := storage.LoadTOML(path, reg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return reg, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigCorrupt, path, err)
	}
	if reg.Locations == nil {
		reg.Locations = map[string]string{}
	}

	for id, base := range reg.Locations {
		if !identity.ID(id).Valid() {
			return nil, fmt.Errorf("%w: %s: invalid project id %q", ErrConfigCorrupt, path, id)
		}
		if !filepath.IsAbs(base) {
			return nil, fmt.Errorf("%w: %s: location for %s is not absolute: %q", ErrConfigCorrupt, path, id, base)
		}
	}

	return reg, nil
}

// Path returns the file the registry was loaded from.
func (r *Registry) Path() string {
	return r.path
}

// Get returns the base directory registered for id.
func (r *Registry) Get(id identity.ID) (string, bool) {
	base, ok := r.Locations[string(id)]
	return base, ok
}

// Set registers base for id, replacing any previous entry.
func (r *Registry) Set(id identity.ID, base string) error {
	if !filepath.IsAbs(base) {
		return fmt.Errorf("store location must be absolute, got %q", base)
	}
	r.Locations[string(id)] = filepath.Clean(base)
	return nil
}

// IDs returns the registered identities in sorted order.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.Locations))
}

// Save writes the registry atomically.
func (r *Registry) Save() error {
	if err := storage.SaveTOML(r.path, r); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// lock takes an exclusive lock next to the registry file.
func lock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create registry directory: %w", err)
	}
	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("lock registry: %w", err)
	}
	return fl, nil
}

// Update runs fn on the registry under an exclusive lock and saves the
// result when fn succeeds.
func Update(path string, fn func(*Registry) error) error {
	fl, err := lock(path)
	if err != nil {
		return err
	}
	defer fl.Unlock()

	reg, err := Load(path)
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	return reg.Save()
}

// Resolve returns the base directory for id. When id has no entry,
// defaultBase is recorded and returned.
func Resolve(path string, id identity.ID, defaultBase string) (string, error) {
	reg, err := Load(path)
	if err != nil {
		return "", err
	}
	if base, ok := reg.Get(id); ok {
		return base, nil
	}

	var base string
	err = Update(path, func(r *Registry) error {
		// Another process may have written the entry since the unlocked read.
		if existing, ok := r.Get(id); ok {
			base = existing
			return nil
		}
		base = defaultBase
		return r.Set(id, defaultBase)
	})
	if err != nil {
		return "", err
	}
	return base, nil
}
