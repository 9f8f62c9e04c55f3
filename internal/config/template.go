package config

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultTemplate is the commented config written by `forkup config init`.
const DefaultTemplate = `# forkup configuration

# Directory to scan for clones (default: current directory)
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# root = "~/src"

# How many directory levels below root to search (root itself is level 0)
# Use -1 for unlimited.
max_depth = 3

# Form of rewritten remote URLs: "ssh" (git@host:owner/repo.git)
# or "https" (https://host/owner/repo.git)
protocol = "ssh"

# Account whose copies origin should point at.
# Empty means ask the forge CLI (gh api user / glab api user).
# user = "octocat"

# What to do with an existing "upstream" remote:
#   normalize - rewrite to the preferred protocol, drop it when it duplicates origin,
#               point it at the original project for forked repositories
#   keep      - never touch an existing upstream (one is still added for new forks)
#   remove    - delete upstream remotes and never add one
upstream = "normalize"

# Create a fork when a third-party repository has none under your account
fork = true

# Skip directories whose path (relative to root) contains any of these
# ignore = ["archive", "vendor", "node_modules"]

# Skip directories matching these patterns (** matches across directories)
# ignore_globs = ["**/testdata/**", "scratch/*"]

# Managed hosts and their forge. Remotes on other hosts are skipped.
# Supported forges: "github" (gh CLI), "gitlab" (glab CLI)
[hosts]
"github.com" = "github"
# "gitlab.com" = "gitlab"
# "github.mycompany.com" = "github"   # GitHub Enterprise

# Per-host user overrides
# [users]
# "github.mycompany.com" = "octocat-work"

# Where applied changes are recorded for "forkup history" and "forkup revert"
# journal = "~/.forkup/journal.json"
`

// Init writes DefaultTemplate to path (DefaultPath() when empty).
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(path string, force bool) (string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path + " (use -f to overwrite)")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(DefaultTemplate), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
