//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Solexma/git-side/internal/identity"
	"github.com/Solexma/git-side/internal/tracked"
)

// TestAdd_TracksAndStages tests tracking a file and a directory.
//
// Scenario: User runs `git side add .env notes`
// Expected: Side repo is created, paths are tracked and their files staged
func TestAdd_TracksAndStages(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)

	writeFile(t, repoPath, ".env", "SECRET=1\n")
	writeFile(t, repoPath, "notes/todo.md", "- ship\n")
	writeFile(t, repoPath, "notes/deep/idea.md", "idea\n")

	out := env.mustRun(repoPath, newAddCmd(), ".env", "notes")

	for _, want := range []string{"Tracking: .env", "Tracking: notes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	staged := env.storeGit(repoPath, "ls-files")
	for _, want := range []string{".env", "notes/todo.md", "notes/deep/idea.md"} {
		if !strings.Contains(staged, want) {
			t.Errorf("expected %s in shadow index, got:\n%s", want, staged)
		}
	}

	trackedFile, err := os.ReadFile(filepath.Join(env.storeDir(repoPath), "side-tracked"))
	if err != nil {
		t.Fatalf("failed to read tracked file: %v", err)
	}
	if string(trackedFile) != ".env\nnotes\n" {
		t.Errorf("tracked file = %q", trackedFile)
	}
}

// TestAdd_PrimaryRepoUntouched verifies the primary index never sees side files.
//
// Scenario: User tracks a file that is ignored by the primary repo
// Expected: File is staged in the side repo, primary index and status unchanged
func TestAdd_PrimaryRepoUntouched(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)

	writeFile(t, repoPath, ".gitignore", ".env\n")
	runGitCommand(t, repoPath, "git", "add", ".gitignore")
	runGitCommand(t, repoPath, "git", "commit", "--quiet", "-m", "Ignore env")
	writeFile(t, repoPath, ".env", "SECRET=1\n")

	before := runGitCommand(t, repoPath, "git", "ls-files", "--stage")
	env.mustRun(repoPath, newAddCmd(), ".env")

	if after := runGitCommand(t, repoPath, "git", "ls-files", "--stage"); after != before {
		t.Errorf("primary index changed:\nbefore:\n%s\nafter:\n%s", before, after)
	}
	if status := runGitCommand(t, repoPath, "git", "status", "--porcelain"); status != "" {
		t.Errorf("primary status should be clean, got:\n%s", status)
	}
	if !strings.Contains(env.storeGit(repoPath, "ls-files"), ".env") {
		t.Error("ignored file should be staged in the side repo")
	}
}

// TestAdd_FromSubdirectory tests path resolution relative to the cwd.
//
// Scenario: User runs `git side add local.cfg` inside sub/
// Expected: sub/local.cfg is tracked
func TestAdd_FromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)
	writeFile(t, repoPath, "sub/local.cfg", "x\n")

	out := env.mustRun(filepath.Join(repoPath, "sub"), newAddCmd(), "local.cfg")

	if !strings.Contains(out, "Tracking: sub/local.cfg") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

// TestAdd_Errors tests the failure modes of add.
func TestAdd_Errors(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)
	writeFile(t, tmpDir, "outside.txt", "x\n")

	t.Run("outside project", func(t *testing.T) {
		_, err := env.run(repoPath, newAddCmd(), "../outside.txt")
		if !errors.Is(err, tracked.ErrPathOutsideProject) {
			t.Fatalf("expected ErrPathOutsideProject, got %v", err)
		}
		if code := exitCode(err); code != exitOutsideProject {
			t.Errorf("exit code = %d, want %d", code, exitOutsideProject)
		}
	})

	t.Run("inside .git", func(t *testing.T) {
		_, err := env.run(repoPath, newAddCmd(), ".git/config")
		if !errors.Is(err, tracked.ErrPathOutsideProject) {
			t.Fatalf("expected ErrPathOutsideProject, got %v", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := env.run(repoPath, newAddCmd(), "nope.txt")
		if err == nil || !strings.Contains(err.Error(), "does not exist") {
			t.Fatalf("expected missing path error, got %v", err)
		}
		if _, statErr := os.Stat(env.storeDir(repoPath)); !errors.Is(statErr, os.ErrNotExist) {
			t.Error("store should not be created when validation fails")
		}
	})

	t.Run("not a project", func(t *testing.T) {
		_, err := env.run(tmpDir, newAddCmd(), "outside.txt")
		if !errors.Is(err, identity.ErrNotAProject) {
			t.Fatalf("expected ErrNotAProject, got %v", err)
		}
		if code := exitCode(err); code != exitNotAProject {
			t.Errorf("exit code = %d, want %d", code, exitNotAProject)
		}
	})
}

// TestAdd_NoInitialCommit tests a repository without commits.
//
// Scenario: User runs `git side add` in a freshly initialized repo
// Expected: Fails as not a project (no identity yet)
func TestAdd_NoInitialCommit(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := filepath.Join(tmpDir, "empty")
	if err := os.Mkdir(repoPath, 0755); err != nil {
		t.Fatal(err)
	}
	runGitCommand(t, repoPath, "git", "init", "--quiet")
	writeFile(t, repoPath, ".env", "x\n")
	env := newTestEnv(t, tmpDir)

	_, err := env.run(repoPath, newAddCmd(), ".env")
	if !errors.Is(err, identity.ErrNoInitialCommit) {
		t.Fatalf("expected ErrNoInitialCommit, got %v", err)
	}
	if code := exitCode(err); code != exitNotAProject {
		t.Errorf("exit code = %d, want %d", code, exitNotAProject)
	}
}
