// Package cmd provides helpers for executing shell commands with proper error handling.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/Solexma/git-side/internal/log"
)

// Options configures a single command execution.
type Options struct {
	Dir    string    // working directory; empty means the current one
	Env    []string  // extra KEY=VALUE entries appended to os.Environ()
	Unset  []string  // variable names dropped from os.Environ()
	Stdin  io.Reader // optional stdin
	Stdout io.Writer // when set, stdout is streamed here instead of captured
}

// RunContext executes a command with context support and verbose logging.
// Returns stderr in the error message if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := Exec(ctx, Options{Dir: dir}, name, args...)
	return err
}

// OutputContext executes a command with context support and verbose logging,
// returning stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return Exec(ctx, Options{Dir: dir}, name, args...)
}

// Exec runs name with args according to opts.
// Captured stdout is returned unless opts.Stdout is set. If the context was
// cancelled or hit its deadline, ctx.Err() is returned instead of the exit error.
func Exec(ctx context.Context, opts Options, name string, args ...string) ([]byte, error) {
	done := log.FromContext(ctx).Command(opts.Dir, name, args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = opts.Dir
	if len(opts.Env) > 0 || len(opts.Unset) > 0 {
		c.Env = append(environ(opts.Unset), opts.Env...)
	}
	c.Stdin = opts.Stdin

	var stdout, stderr bytes.Buffer
	if opts.Stdout != nil {
		c.Stdout = opts.Stdout
	} else {
		c.Stdout = &stdout
	}
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, &ExitError{Msg: errMsg, Err: err}
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// environ returns os.Environ() without the named variables.
func environ(unset []string) []string {
	env := os.Environ()
	if len(unset) == 0 {
		return env
	}
	out := env[:0:0]
	for _, kv := range env {
		name, _, _ := strings.Cut(kv, "=")
		if !slices.Contains(unset, name) {
			out = append(out, kv)
		}
	}
	return out
}

// ExitError is a failed command whose stderr carried a message.
type ExitError struct {
	Msg string
	Err error
}

func (e *ExitError) Error() string { return e.Msg }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code carried by err, or -1.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
