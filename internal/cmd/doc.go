// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users. Every
// invocation is traced through the context logger in verbose mode.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoPath, "git", "remote", "remove", "upstream"); err != nil {
//	    // err is a *cmd.Error carrying the trimmed stderr
//	    return fmt.Errorf("remove upstream: %w", err)
//	}
//
//	// For commands that return output:
//	out, err := cmd.OutputContext(ctx, "", "gh", "api", "user", "--jq", ".login")
//
// # Design Notes
//
// forkup shells out to git/gh/glab CLIs rather than using Go libraries.
// This keeps user configuration (SSH keys, credential helpers, insteadOf
// rewrites, gh/glab auth) working without extra setup.
package cmd
