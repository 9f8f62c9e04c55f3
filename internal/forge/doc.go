// Package forge provides an abstraction layer for git hosting services.
//
// The package supports GitHub (via gh CLI) and GitLab (via glab CLI). forkup
// only needs three things from a forge: who the authenticated user is,
// whether a repository exists (and what it was forked from), and creating a
// fork.
//
// # Forge Interface
//
// The [Forge] interface defines operations for:
//
//   - Verifying the CLI is installed and authenticated
//   - Resolving the acting username
//   - Looking up a repository and its fork parent
//   - Forking a repository into the authenticated account
//
// # Platform Detection
//
// Use [Detect] to determine the forge for a remote host. Detection checks:
//
//  1. Host mappings from config (for self-hosted instances)
//  2. Host patterns (gitlab.com, gitlab.* domains)
//  3. Falls back to GitHub (most common)
//
// Never call gh or glab directly outside this package.
package forge
