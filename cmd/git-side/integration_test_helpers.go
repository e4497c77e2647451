//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Solexma/git-side/internal/config"
	"github.com/Solexma/git-side/internal/log"
	"github.com/Solexma/git-side/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runGitCommand runs a git command and returns output
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// setupTestRepo creates a git repo with initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	repoPath := filepath.Join(resolvePath(t, dir), name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGitCommand(t, repoPath, "git", "init", "--quiet", "--initial-branch=main")
	runGitCommand(t, repoPath, "git", "config", "user.email", "test@test.com")
	runGitCommand(t, repoPath, "git", "config", "user.name", "Test User")
	runGitCommand(t, repoPath, "git", "config", "commit.gpgsign", "false")

	writeFile(t, repoPath, "README.md", "# "+name+"\n")
	runGitCommand(t, repoPath, "git", "add", "README.md")
	runGitCommand(t, repoPath, "git", "commit", "--quiet", "-m", "Initial commit")

	return repoPath
}

// writeFile creates rel (and its parents) below dir.
func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// rootCommit returns the root commit id of the repo at dir.
func rootCommit(t *testing.T, dir string) string {
	t.Helper()
	return strings.TrimSpace(runGitCommand(t, dir, "git", "rev-list", "--max-parents=0", "HEAD"))
}

// testEnv is an isolated git-side installation: its own base path and
// location registry under a temp dir.
type testEnv struct {
	t   *testing.T
	cfg *config.Config
	out *bytes.Buffer
}

func newTestEnv(t *testing.T, tmpDir string) *testEnv {
	t.Helper()
	cfg := config.Default()
	cfg.BasePath = filepath.Join(tmpDir, "data")
	cfg.RegistryPath = filepath.Join(tmpDir, "config", "locations.toml")
	return &testEnv{t: t, cfg: &cfg, out: &bytes.Buffer{}}
}

// testContext returns a context carrying the env's config, workDir and an
// output buffer. Logging is discarded.
func (e *testEnv) testContext(workDir string) context.Context {
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, e.out)
	ctx = config.WithConfig(ctx, e.cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	return ctx
}

// run executes cmd with args from workDir and returns its output.
func (e *testEnv) run(workDir string, cmd *cobra.Command, args ...string) (string, error) {
	e.t.Helper()
	e.out.Reset()
	cmd.SetContext(e.testContext(workDir))
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return e.out.String(), err
}

// mustRun is run that fails the test on error.
func (e *testEnv) mustRun(workDir string, cmd *cobra.Command, args ...string) string {
	e.t.Helper()
	out, err := e.run(workDir, cmd, args...)
	if err != nil {
		e.t.Fatalf("%s %v failed: %v\n%s", cmd.Name(), args, err, out)
	}
	return out
}

// storeDir returns the shadow store path of the project at repoPath.
func (e *testEnv) storeDir(repoPath string) string {
	return filepath.Join(e.cfg.BasePath, rootCommit(e.t, repoPath))
}

// initStore creates the shadow store of repoPath and gives it a committer
// identity.
func (e *testEnv) initStore(repoPath string) string {
	e.t.Helper()
	e.mustRun(repoPath, newInitCmd())
	store := e.storeDir(repoPath)
	runGitCommand(e.t, repoPath, "git", "--git-dir="+store, "config", "user.email", "test@test.com")
	runGitCommand(e.t, repoPath, "git", "--git-dir="+store, "config", "user.name", "Test User")
	runGitCommand(e.t, repoPath, "git", "--git-dir="+store, "config", "commit.gpgsign", "false")
	return store
}

// storeGit runs git against the shadow store of repoPath.
func (e *testEnv) storeGit(repoPath string, args ...string) string {
	e.t.Helper()
	full := append([]string{"git", "--git-dir=" + e.storeDir(repoPath), "--work-tree=" + repoPath}, args...)
	return runGitCommand(e.t, repoPath, full...)
}
