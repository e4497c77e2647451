//go:build integration

package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/Solexma/git-side/internal/shadow"
)

// TestCommit_SyncsBeforeCommitting tests that commit picks up edits on disk.
//
// Scenario: Tracked file is edited after add, user runs `git side commit -m`
// Expected: Commit contains the edited content
func TestCommit_SyncsBeforeCommitting(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)
	env.initStore(repoPath)

	writeFile(t, repoPath, ".env", "v1\n")
	env.mustRun(repoPath, newAddCmd(), ".env")
	writeFile(t, repoPath, ".env", "v2\n")

	out := env.mustRun(repoPath, newCommitCmd(), "-m", "Update env")

	if !strings.Contains(out, "Committed to side repo.") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if got := env.storeGit(repoPath, "show", "HEAD:.env"); got != "v2\n" {
		t.Errorf("committed content = %q, want v2", got)
	}
	if got := strings.TrimSpace(env.storeGit(repoPath, "log", "-1", "--format=%s")); got != "Update env" {
		t.Errorf("commit subject = %q", got)
	}
}

// TestCommit_MessageFromStdin tests `git side commit -m -`.
func TestCommit_MessageFromStdin(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)
	env.initStore(repoPath)

	writeFile(t, repoPath, ".env", "x\n")
	env.mustRun(repoPath, newAddCmd(), ".env")

	cmd := newCommitCmd()
	cmd.SetIn(strings.NewReader("From stdin\n\nWith body\n"))
	env.mustRun(repoPath, cmd, "-m", "-")

	if got := env.storeGit(repoPath, "log", "-1", "--format=%B"); !strings.HasPrefix(got, "From stdin\n\nWith body") {
		t.Errorf("commit message = %q", got)
	}
}

// TestCommit_NothingToCommit tests committing without changes.
//
// Scenario: Everything is committed, user runs commit again
// Expected: Fails with ErrNothingToCommit
func TestCommit_NothingToCommit(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)
	env.initStore(repoPath)

	writeFile(t, repoPath, ".env", "x\n")
	env.mustRun(repoPath, newAddCmd(), ".env")
	env.mustRun(repoPath, newCommitCmd(), "-m", "first")

	_, err := env.run(repoPath, newCommitCmd(), "-m", "second")
	if !errors.Is(err, shadow.ErrNothingToCommit) {
		t.Fatalf("expected ErrNothingToCommit, got %v", err)
	}
}

// TestCommit_EmptyMessage tests that a blank message is rejected.
func TestCommit_EmptyMessage(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)

	_, err := env.run(repoPath, newCommitCmd(), "-m", "  ")
	if err == nil || !strings.Contains(err.Error(), "empty commit message") {
		t.Fatalf("expected empty message error, got %v", err)
	}
}

// TestAuto_UsesPrimaryMessage tests the hook entry point.
//
// Scenario: Tracked file changes, primary repo commits, `git side auto` runs
// Expected: Side commit reuses the primary commit message; a second run is a no-op
func TestAuto_UsesPrimaryMessage(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)
	env.initStore(repoPath)

	writeFile(t, repoPath, ".env", "x\n")
	env.mustRun(repoPath, newAddCmd(), ".env")

	writeFile(t, repoPath, "main.go", "package main\n")
	runGitCommand(t, repoPath, "git", "add", "main.go")
	runGitCommand(t, repoPath, "git", "commit", "--quiet", "-m", "Add main\n\nDetails")

	out := env.mustRun(repoPath, newAutoCmd())
	if !strings.Contains(out, "Auto-committed: Add main") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if got := strings.TrimSpace(env.storeGit(repoPath, "log", "-1", "--format=%s")); got != "Add main" {
		t.Errorf("side commit subject = %q", got)
	}

	out = env.mustRun(repoPath, newAutoCmd())
	if !strings.Contains(out, "Nothing to commit") {
		t.Errorf("second auto should report nothing to commit:\n%s", out)
	}
}

// TestAuto_NothingTracked tests auto in a project without tracked paths.
func TestAuto_NothingTracked(t *testing.T) {
	t.Parallel()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, tmpDir, "myrepo")
	env := newTestEnv(t, tmpDir)

	_, err := env.run(repoPath, newAutoCmd())
	if err == nil || !strings.Contains(err.Error(), "no paths tracked") {
		t.Fatalf("expected no paths tracked error, got %v", err)
	}
}
