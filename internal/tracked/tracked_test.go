package tracked

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	s, err := Load(filepath.Join(t.TempDir(), "side-tracked"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestAddSaveLoad(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "store", "side-tracked")
	s, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"notes", ".env", "docs/todo.md"} {
		if !s.Add(p) {
			t.Errorf("Add(%q) = false, want true", p)
		}
	}
	if s.Add("notes") {
		t.Error("re-adding a root should report false")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{".env", "docs/todo.md", "notes"}
	if diff := cmp.Diff(want, loaded.Paths()); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SkipsBlankAndComments(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "side-tracked")
	if err := os.WriteFile(file, []byte("# roots\n\nb\n  a  \nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(file)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, s.Paths()); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
}

func TestRemove_Nested(t *testing.T) {
	t.Parallel()

	s := &Set{}
	for _, p := range []string{"notes", "notes/private", "notes-old", "notes/a/b.md", "other"} {
		s.Add(p)
	}

	removed := s.Remove("notes")
	if diff := cmp.Diff([]string{"notes", "notes/a/b.md", "notes/private"}, removed); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"notes-old", "other"}, s.Paths()); diff != "" {
		t.Errorf("remaining mismatch (-want +got):\n%s", diff)
	}
	if got := s.Remove("missing"); len(got) != 0 {
		t.Errorf("Remove(missing) = %v, want none", got)
	}
}

func TestContainsCoversUnder(t *testing.T) {
	t.Parallel()

	s := &Set{}
	s.Add("notes")
	s.Add("notes/deep")
	s.Add("x.txt")

	if !s.Contains("notes") || s.Contains("notes/a.md") {
		t.Error("Contains should match declared roots only")
	}
	for p, want := range map[string]bool{
		"notes":       true,
		"notes/a.md":  true,
		"x.txt":       true,
		"notes2/a.md": false,
		"y.txt":       false,
	} {
		if got := s.Covers(p); got != want {
			t.Errorf("Covers(%q) = %v, want %v", p, got, want)
		}
	}
	if diff := cmp.Diff([]string{"notes/deep"}, s.Under("notes")); diff != "" {
		t.Errorf("Under mismatch (-want +got):\n%s", diff)
	}

	root := &Set{}
	root.Add(".")
	if !root.Covers("any/file") {
		t.Error("the work tree root covers everything")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	wt := "/home/u/project"
	tests := []struct {
		name    string
		cwd     string
		arg     string
		want    string
		wantErr bool
	}{
		{"relative from root", wt, "notes", "notes", false},
		{"relative from subdir", wt + "/docs", "../notes/a.md", "notes/a.md", false},
		{"trailing slash", wt, "notes/", "notes", false},
		{"absolute inside", "/tmp", wt + "/notes", "notes", false},
		{"root itself", wt, ".", ".", false},
		{"outside", wt, "../other", "", true},
		{"absolute outside", wt, "/etc/passwd", "", true},
		{"primary git dir", wt, ".git/config", "", true},
		{"git dir itself", wt + "/sub", "../.git", "", true},
		{"gitignore is fine", wt, ".gitignore", ".gitignore", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(wt, tt.cwd, tt.arg)
			if tt.wantErr {
				if !errors.Is(err, ErrPathOutsideProject) {
					t.Errorf("Normalize(%q) err = %v, want ErrPathOutsideProject", tt.arg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) failed: %v", tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestNormalize_SymlinkedCwd(t *testing.T) {
	t.Parallel()

	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	wt := filepath.Join(tmp, "project")
	if err := os.MkdirAll(filepath.Join(wt, "notes"), 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(wt, link); err != nil {
		t.Skip("symlinks unsupported")
	}

	got, err := Normalize(wt, link, "notes")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got != "notes" {
		t.Errorf("Normalize = %q, want notes", got)
	}
}
