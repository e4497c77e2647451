package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// appName is the directory name used under the XDG config and data homes.
const appName = "git-side"

// Defaults for optional settings.
const (
	DefaultRemote          = "origin"
	DefaultBranch          = "main"
	DefaultNetworkTimeout  = 60 * time.Second
	DefaultRenameThreshold = 50
	DefaultHookCommand     = "git side auto"
	DefaultHookEvent       = "post-commit"
)

// Config holds the git-side configuration
type Config struct {
	BasePath        string        `toml:"base_path"`        // default base for shadow stores
	Remote          string        `toml:"remote"`           // default alias for push/pull
	Branch          string        `toml:"branch"`           // shadow branch created on init
	NetworkTimeout  time.Duration `toml:"network_timeout"`  // bound for push/pull/fetch
	RenameThreshold int           `toml:"rename_threshold"` // similarity percent for rename pairing
	HookCommand     string        `toml:"hook_command"`     // command written into hook scripts
	HookEvent       string        `toml:"hook_event"`       // default event for "hook install"

	RegistryPath string `toml:"-"` // location registry file
}

// Default returns the default configuration
func Default() Config {
	return Config{
		BasePath:        filepath.Join(xdg.DataHome, appName),
		Remote:          DefaultRemote,
		Branch:          DefaultBranch,
		NetworkTimeout:  DefaultNetworkTimeout,
		RenameThreshold: DefaultRenameThreshold,
		HookCommand:     DefaultHookCommand,
		HookEvent:       DefaultHookEvent,
		RegistryPath:    filepath.Join(xdg.ConfigHome, appName, "locations.toml"),
	}
}

// Dir returns the git-side configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file
func configPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads config from $XDG_CONFIG_HOME/git-side/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	return LoadFile(configPath())
}

// LoadFile reads config from path, layering it over Default() and applying
// environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}

	if err := ValidatePath(cfg.BasePath, "base_path"); err != nil {
		return Default(), err
	}
	expanded, err := ExpandPath(cfg.BasePath)
	if err != nil {
		return Default(), fmt.Errorf("expand base_path: %w", err)
	}
	cfg.BasePath = expanded

	if err := validateEnum(cfg.HookEvent, "hook_event", ValidHookEvents); err != nil {
		return Default(), err
	}
	if err := validateRange(cfg.RenameThreshold, "rename_threshold", 1, 100); err != nil {
		return Default(), err
	}
	if cfg.NetworkTimeout < 0 {
		return Default(), fmt.Errorf("network_timeout must not be negative, got %s", cfg.NetworkTimeout)
	}

	// Use defaults for empty values
	if cfg.BasePath == "" {
		cfg.BasePath = Default().BasePath
	}
	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.NetworkTimeout == 0 {
		cfg.NetworkTimeout = DefaultNetworkTimeout
	}
	if cfg.HookCommand == "" {
		cfg.HookCommand = DefaultHookCommand
	}
	if cfg.HookEvent == "" {
		cfg.HookEvent = DefaultHookEvent
	}

	return cfg, nil
}

// applyEnvOverrides applies GIT_SIDE_* environment variables on top of the file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GIT_SIDE_BASE_PATH"); v != "" {
		cfg.BasePath = v
	}
	if v := os.Getenv("GIT_SIDE_REMOTE"); v != "" {
		cfg.Remote = v
	}
	if v := os.Getenv("GIT_SIDE_NETWORK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GIT_SIDE_NETWORK_TIMEOUT %q: %w", v, err)
		}
		cfg.NetworkTimeout = d
	}
	return nil
}

const defaultConfig = `# git-side configuration

# Base directory for shadow repositories. Each project is stored under
# <base_path>/<root-commit-sha>/. A per-project override can be set with
# "git side init --path <dir>".
# Must be an absolute path or start with ~
# base_path = "~/.local/share/git-side"

# Remote alias used by "git side push" and "git side pull"
remote = "origin"

# Branch created in new shadow repositories
branch = "main"

# Upper bound for push/pull network operations
network_timeout = "60s"

# Similarity (percent) above which a deleted and an added file are recorded
# as a rename instead of a delete+add pair
rename_threshold = 50

# Hook automation
# hook_command is written into installed hook scripts
# hook_event is the default for "git side hook install" (post-commit, pre-push, post-merge)
hook_command = "git side auto"
hook_event = "post-commit"
`

// Init creates a default config file at $XDG_CONFIG_HOME/git-side/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path := configPath()

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}

type configKey struct{}

type workDirKey struct{}

// WithConfig attaches cfg to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored in ctx, or nil.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return nil
}

// WithWorkDir attaches the invocation working directory to the context.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory stored in ctx.
// Falls back to os.Getwd when unset or empty.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}
