// Package git provides git operations via shell commands.
//
// All operations call the git CLI directly rather than using Go git
// libraries, so SSH keys, credential helpers and url.<base>.insteadOf
// rewrites configured by the user keep applying.
//
// # Remote Operations
//
//   - [ListRemotes]: fetch URLs of all remotes
//   - [SetRemoteURL], [AddRemote], [RemoveRemote]: mutations used when rewiring
//
// [CLI] bundles these as methods for consumers that accept an interface.
//
// # Repository Detection
//
//   - [CheckGit]: git is on PATH
//   - [IsRepoRoot]: directory contains a .git entry
package git
