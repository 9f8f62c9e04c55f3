package forge

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound is returned when a repository does not exist or is not visible.
var ErrNotFound = errors.New("repository not found")

// ErrToolNotFound is returned when a forge CLI is not on PATH.
var ErrToolNotFound = errors.New("forge CLI not found")

// Repo describes a repository on the hosting provider.
type Repo struct {
	FullName string // owner/repo
	IsFork   bool
	Parent   string // owner/repo of the fork parent, empty if not a fork
}

// IsForkOf reports whether r is a fork of fullName (case-insensitive).
func (r *Repo) IsForkOf(fullName string) bool {
	return r.IsFork && strings.EqualFold(r.Parent, fullName)
}

// Forge represents a git hosting service (GitHub, GitLab)
type Forge interface {
	// Name returns the forge name ("github" or "gitlab")
	Name() string

	// Check verifies the CLI is installed and authenticated for host
	Check(ctx context.Context, host string) error

	// CurrentUser returns the login of the authenticated account on host
	CurrentUser(ctx context.Context, host string) (string, error)

	// GetRepo looks up owner/repo on host, returning ErrNotFound if absent
	GetRepo(ctx context.Context, host, fullName string) (*Repo, error)

	// Fork creates a fork of owner/repo under the authenticated account
	Fork(ctx context.Context, host, fullName string) error

	// ForkCommand returns the argv Fork runs, for printing plans as scripts
	ForkCommand(host, fullName string) []string
}

// CheckTool verifies the named CLI is on PATH.
func CheckTool(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s (%s)", ErrToolNotFound, name, installHint(name))
	}
	return nil
}

func installHint(name string) string {
	switch name {
	case "gh":
		return "please install GitHub CLI: https://cli.github.com"
	case "glab":
		return "please install GitLab CLI: https://gitlab.com/gitlab-org/cli"
	default:
		return "please install it"
	}
}
