package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/raphi011/forkup/internal/cmd"
)

// GitLab implements Forge for GitLab repositories using the glab CLI.
// Everything goes through `glab api` so self-hosted instances only need
// --hostname.
type GitLab struct{}

// Name returns "gitlab"
func (g *GitLab) Name() string {
	return NameGitLab
}

// Check verifies that glab CLI is available and authenticated
func (g *GitLab) Check(ctx context.Context, host string) error {
	if err := CheckTool("glab"); err != nil {
		return err
	}

	err := cmd.RunContext(ctx, "", "glab", "auth", "status", "--hostname", host)
	if err != nil {
		errMsg := cmd.StderrOf(err)
		if strings.Contains(errMsg, "not logged") || strings.Contains(errMsg, "no token") || errMsg == "" {
			return fmt.Errorf("glab not authenticated for %s: please run 'glab auth login --hostname %s'", host, host)
		}
		return fmt.Errorf("glab auth check failed: %s", errMsg)
	}
	return nil
}

// CurrentUser returns the username glab is authenticated as
func (g *GitLab) CurrentUser(ctx context.Context, host string) (string, error) {
	out, err := cmd.OutputContext(ctx, "", "glab", "api", "user", "--hostname", host)
	if err != nil {
		return "", fmt.Errorf("resolve GitLab user: %w", err)
	}

	var user struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(out, &user); err != nil {
		return "", fmt.Errorf("failed to parse glab output: %w", err)
	}
	if user.Username == "" {
		return "", fmt.Errorf("resolve GitLab user: glab returned an empty username")
	}
	return user.Username, nil
}

// GetRepo fetches project and fork-parent info using glab CLI
func (g *GitLab) GetRepo(ctx context.Context, host, fullName string) (*Repo, error) {
	out, err := cmd.OutputContext(ctx, "", "glab", "api", projectEndpoint(fullName), "--hostname", host)
	if err != nil {
		if strings.Contains(cmd.StderrOf(err), "404") {
			return nil, fmt.Errorf("%s: %w", fullName, ErrNotFound)
		}
		return nil, fmt.Errorf("glab api %s: %w", fullName, err)
	}
	return parseGitLabProject(out)
}

// Fork forks fullName into the authenticated user's namespace
func (g *GitLab) Fork(ctx context.Context, host, fullName string) error {
	argv := g.ForkCommand(host, fullName)
	if err := cmd.RunContext(ctx, "", argv[0], argv[1:]...); err != nil {
		return fmt.Errorf("fork %s: %w", fullName, err)
	}
	return nil
}

// ForkCommand returns the glab invocation used by Fork
func (g *GitLab) ForkCommand(host, fullName string) []string {
	return []string{"glab", "api", "--method", "POST", projectEndpoint(fullName) + "/fork", "--hostname", host}
}

// projectEndpoint returns the REST path for a project addressed by its
// URL-encoded full path.
func projectEndpoint(fullName string) string {
	return "projects/" + url.PathEscape(fullName)
}

func parseGitLabProject(data []byte) (*Repo, error) {
	var project struct {
		PathWithNamespace string `json:"path_with_namespace"`
		ForkedFrom        *struct {
			PathWithNamespace string `json:"path_with_namespace"`
		} `json:"forked_from_project"`
	}
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to parse glab output: %w", err)
	}
	if project.PathWithNamespace == "" {
		return nil, fmt.Errorf("failed to parse glab output: missing path_with_namespace")
	}

	repo := &Repo{FullName: project.PathWithNamespace}
	if project.ForkedFrom != nil && project.ForkedFrom.PathWithNamespace != "" {
		repo.IsFork = true
		repo.Parent = project.ForkedFrom.PathWithNamespace
	}
	return repo, nil
}
