package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// configureTestRepo sets git user config and disables GPG signing.
func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
}

// initTestRepo creates an empty repo on main with git config but no commits.
func initTestRepo(t *testing.T) string {
	t.Helper()
	repoPath := filepath.Join(resolveTempDir(t), "test-repo")
	if err := runGit(context.Background(), "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	configureTestRepo(t, repoPath)
	return repoPath
}

// commitFile writes name with content and commits it with msg.
func commitFile(t *testing.T, repoPath, name, content, msg string) {
	t.Helper()
	ctx := context.Background()
	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", name); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", msg); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

// setupTestRepo creates a git repo with main branch, initial commit, and git config.
// Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	repoPath := initTestRepo(t)
	commitFile(t, repoPath, "README.md", "# test\n", "Initial commit")
	return repoPath
}

func TestRepoRoot(t *testing.T) {
	t.Parallel()

	repoPath := setupTestRepo(t)
	sub := filepath.Join(repoPath, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for _, dir := range []string{repoPath, sub} {
		got, err := RepoRoot(ctx, dir)
		if err != nil {
			t.Fatalf("RepoRoot(%s) failed: %v", dir, err)
		}
		if got != repoPath {
			t.Errorf("RepoRoot(%s) = %s, want %s", dir, got, repoPath)
		}
	}

	if _, err := RepoRoot(ctx, resolveTempDir(t)); err == nil {
		t.Error("expected error outside a repository")
	}
}

func TestIsInsideRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoPath := setupTestRepo(t)
	if !IsInsideRepo(ctx, repoPath) {
		t.Error("expected repo path to be inside a repo")
	}
	if IsInsideRepo(ctx, filepath.Join(repoPath, ".git")) {
		t.Error("the .git directory is not a work tree")
	}
	if IsInsideRepo(ctx, resolveTempDir(t)) {
		t.Error("expected plain temp dir to be outside a repo")
	}
}

func TestCommonDir(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoPath := setupTestRepo(t)
	want := filepath.Join(repoPath, ".git")

	got, err := CommonDir(ctx, repoPath)
	if err != nil {
		t.Fatalf("CommonDir failed: %v", err)
	}
	if got != want {
		t.Errorf("CommonDir = %s, want %s", got, want)
	}

	// Linked worktrees share the main repository's hooks directory.
	wtPath := filepath.Join(filepath.Dir(repoPath), "linked")
	if err := runGit(ctx, repoPath, "worktree", "add", "-b", "linked", wtPath); err != nil {
		t.Fatalf("failed to create worktree: %v", err)
	}
	got, err = CommonDir(ctx, wtPath)
	if err != nil {
		t.Fatalf("CommonDir from worktree failed: %v", err)
	}
	if got != want {
		t.Errorf("CommonDir from worktree = %s, want %s", got, want)
	}
}

func TestHasHead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoPath := initTestRepo(t)
	if HasHead(ctx, repoPath) {
		t.Error("fresh repo should have no HEAD commit")
	}
	commitFile(t, repoPath, "a.txt", "a", "first")
	if !HasHead(ctx, repoPath) {
		t.Error("expected HEAD after first commit")
	}
}

func TestRootCommits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoPath := setupTestRepo(t)
	first, err := outputGit(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		t.Fatal(err)
	}
	commitFile(t, repoPath, "b.txt", "b", "second")

	roots, err := RootCommits(ctx, repoPath)
	if err != nil {
		t.Fatalf("RootCommits failed: %v", err)
	}
	if len(roots) != 1 || roots[0]+"\n" != string(first) {
		t.Errorf("RootCommits = %v, want [%s]", roots, first)
	}
}

func TestRootCommits_UnrelatedHistories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoPath := setupTestRepo(t)
	if err := runGit(ctx, repoPath, "checkout", "--orphan", "other"); err != nil {
		t.Fatal(err)
	}
	commitFile(t, repoPath, "other.txt", "o", "other root")
	if err := runGit(ctx, repoPath, "checkout", "main"); err != nil {
		t.Fatal(err)
	}
	if err := runGit(ctx, repoPath, "merge", "--allow-unrelated-histories", "-m", "merge", "other"); err != nil {
		t.Fatal(err)
	}

	roots, err := RootCommits(ctx, repoPath)
	if err != nil {
		t.Fatalf("RootCommits failed: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}
	if roots[0] > roots[1] {
		t.Errorf("roots not sorted: %v", roots)
	}
}

func TestLastCommitMessage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoPath := setupTestRepo(t)
	commitFile(t, repoPath, "b.txt", "b", "Add b\n\nWith a body.")

	got, err := LastCommitMessage(ctx, repoPath)
	if err != nil {
		t.Fatalf("LastCommitMessage failed: %v", err)
	}
	if got != "Add b\n\nWith a body." {
		t.Errorf("LastCommitMessage = %q", got)
	}
}

func TestShortCommitHash(t *testing.T) {
	t.Parallel()

	hash, err := ShortCommitHash(context.Background(), setupTestRepo(t))
	if err != nil {
		t.Fatalf("ShortCommitHash failed: %v", err)
	}
	if len(hash) < 7 {
		t.Errorf("ShortCommitHash = %q, want at least 7 chars", hash)
	}
}
