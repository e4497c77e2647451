// Package config handles loading and validation of git-side configuration.
//
// Configuration is read from $XDG_CONFIG_HOME/git-side/config.toml
// (usually ~/.config/git-side/config.toml) with environment variable
// overrides.
//
// # Configuration Sources (highest priority first)
//
//   - GIT_SIDE_BASE_PATH env var: default base directory for shadow stores
//   - GIT_SIDE_REMOTE env var: default remote alias for push/pull
//   - GIT_SIDE_NETWORK_TIMEOUT env var: bound for network operations
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - base_path: where shadow stores live (default $XDG_DATA_HOME/git-side)
//   - remote, branch: remote alias and shadow branch name
//   - network_timeout: push/pull fail instead of hanging past this bound
//   - rename_threshold: similarity percent for rename detection
//   - hook_command, hook_event: what installed hooks run and when
//
// The per-project store location chosen with "git side init --path" is not
// part of this file; it lives in the location registry next to it.
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
