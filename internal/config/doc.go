// Package config handles loading and validation of forkup configuration.
//
// Configuration is read from ~/.config/forkup/config.toml (or the file named
// by --config / FORKUP_CONFIG) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags (applied by the caller)
//   - FORKUP_ROOT, FORKUP_USER, FORKUP_PROTOCOL, FORKUP_UPSTREAM,
//     FORKUP_MAX_DEPTH, FORKUP_IGNORE (comma separated, appended),
//     FORKUP_NO_FORK
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - root: directory to scan (must be absolute or ~/...)
//   - max_depth: directory levels below root to search (default 3)
//   - protocol: "ssh" or "https" form for rewritten remotes
//   - upstream: "normalize", "keep" or "remove"
//   - [hosts]: managed host -> forge ("github" or "gitlab")
//   - [users]: per-host acting user
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config
