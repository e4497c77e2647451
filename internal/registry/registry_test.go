package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Solexma/git-side/internal/identity"
)

func testID(n int) identity.ID {
	return identity.ID(fmt.Sprintf("%040x", n))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	reg, err := Load(filepath.Join(t.TempDir(), "locations.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(reg.Locations) != 0 {
		t.Errorf("expected empty registry, got %v", reg.Locations)
	}
}

func TestSetSaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg", "locations.toml")
	reg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Set(testID(1), "/srv/side/"); err != nil {
		t.Fatal(err)
	}
	if err := reg.Set(testID(2), "/data"); err != nil {
		t.Fatal(err)
	}
	if err := reg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if base, ok := loaded.Get(testID(1)); !ok || base != "/srv/side" {
		t.Errorf("Get(1) = %q, %v", base, ok)
	}
	if got := loaded.IDs(); len(got) != 2 || got[0] != string(testID(1)) {
		t.Errorf("IDs = %v", got)
	}
}

func TestSet_OverwritesAndRejectsRelative(t *testing.T) {
	t.Parallel()

	reg, err := Load(filepath.Join(t.TempDir(), "locations.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Set(testID(1), "/a"); err != nil {
		t.Fatal(err)
	}
	if err := reg.Set(testID(1), "/b"); err != nil {
		t.Fatal(err)
	}
	if base, _ := reg.Get(testID(1)); base != "/b" {
		t.Errorf("Get = %q, want /b", base)
	}
	if err := reg.Set(testID(1), "relative"); err == nil {
		t.Error("expected error for relative location")
	}
}

func TestLoad_Corrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unparsable", "[locations\n"},
		{"relative entry", fmt.Sprintf("[locations]\n%q = \"rel/dir\"\n", testID(1))},
		{"bad id", "[locations]\nnotahash = \"/abs\"\n"},
		{"wrong type", "locations = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "locations.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrConfigCorrupt) {
				t.Errorf("Load error = %v, want ErrConfigCorrupt", err)
			}
		})
	}
}

func TestResolve_PersistsDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locations.toml")

	base, err := Resolve(path, testID(7), "/default/base")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if base != "/default/base" {
		t.Errorf("Resolve = %q, want default", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("registry not written: %v", err)
	}
	if !strings.Contains(string(data), "/default/base") {
		t.Errorf("registry missing default entry:\n%s", data)
	}

	// An existing entry wins over a different default.
	base, err = Resolve(path, testID(7), "/other")
	if err != nil {
		t.Fatal(err)
	}
	if base != "/default/base" {
		t.Errorf("Resolve = %q, want stored entry", base)
	}
}

func TestResolve_CorruptFailsClosed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locations.toml")
	if err := os.WriteFile(path, []byte("garbage = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resolve(path, testID(1), "/default"); !errors.Is(err, ErrConfigCorrupt) {
		t.Errorf("Resolve error = %v, want ErrConfigCorrupt", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "garbage = [" {
		t.Error("corrupt registry must not be overwritten")
	}
}

func TestUpdate_ConcurrentWritersKeepAllEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locations.toml")

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- Update(path, func(r *Registry) error {
				return r.Set(testID(i), fmt.Sprintf("/base/%d", i))
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reg.Locations) != n {
		t.Errorf("expected %d entries, got %d", n, len(reg.Locations))
	}
}

func TestUpdate_ErrorSkipsSave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locations.toml")
	wantErr := errors.New("boom")
	err := Update(path, func(r *Registry) error {
		_ = r.Set(testID(1), "/x")
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update error = %v, want %v", err, wantErr)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("registry should not be written when fn fails")
	}
}
