package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Remote names used by forkup.
const (
	Origin   = "origin"
	Upstream = "upstream"
)

// ListRemotes returns the fetch URL of every remote in the repository at dir.
func ListRemotes(ctx context.Context, dir string) (map[string]string, error) {
	out, err := outputGit(ctx, dir, "remote", "-v")
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	return parseRemoteVerbose(out), nil
}

// parseRemoteVerbose parses `git remote -v` output:
//
//	origin	git@github.com:me/repo.git (fetch)
//	origin	git@github.com:me/repo.git (push)
//
// Only fetch URLs are kept.
func parseRemoteVerbose(out []byte) map[string]string {
	remotes := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		if len(fields) >= 3 && fields[len(fields)-1] != "(fetch)" {
			continue
		}
		remotes[fields[0]] = fields[1]
	}
	return remotes
}

// SetRemoteURL points an existing remote at url.
func SetRemoteURL(ctx context.Context, dir, name, url string) error {
	if err := runGit(ctx, dir, "remote", "set-url", name, url); err != nil {
		return fmt.Errorf("set url of remote %s: %w", name, err)
	}
	return nil
}

// AddRemote adds a new remote.
func AddRemote(ctx context.Context, dir, name, url string) error {
	if err := runGit(ctx, dir, "remote", "add", name, url); err != nil {
		return fmt.Errorf("add remote %s: %w", name, err)
	}
	return nil
}

// RemoveRemote deletes a remote and its remote-tracking branches.
func RemoveRemote(ctx context.Context, dir, name string) error {
	if err := runGit(ctx, dir, "remote", "remove", name); err != nil {
		return fmt.Errorf("remove remote %s: %w", name, err)
	}
	return nil
}

// CLI exposes the remote operations as methods so callers can depend on an
// interface and swap in fakes.
type CLI struct{}

func (CLI) ListRemotes(ctx context.Context, dir string) (map[string]string, error) {
	return ListRemotes(ctx, dir)
}

func (CLI) SetRemoteURL(ctx context.Context, dir, name, url string) error {
	return SetRemoteURL(ctx, dir, name, url)
}

func (CLI) AddRemote(ctx context.Context, dir, name, url string) error {
	return AddRemote(ctx, dir, name, url)
}

func (CLI) RemoveRemote(ctx context.Context, dir, name string) error {
	return RemoveRemote(ctx, dir, name)
}
