package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raphi011/forkup/internal/cmd"
)

// GitHub implements Forge for GitHub repositories using the gh CLI.
type GitHub struct{}

// Name returns "github"
func (g *GitHub) Name() string {
	return NameGitHub
}

// Check verifies that gh CLI is available and authenticated
func (g *GitHub) Check(ctx context.Context, host string) error {
	if err := CheckTool("gh"); err != nil {
		return err
	}

	err := cmd.RunContext(ctx, "", "gh", "auth", "status", "--hostname", host)
	if err != nil {
		errMsg := cmd.StderrOf(err)
		if strings.Contains(errMsg, "not logged") || strings.Contains(errMsg, "no accounts") || errMsg == "" {
			return fmt.Errorf("gh not authenticated for %s: please run 'gh auth login --hostname %s'", host, host)
		}
		return fmt.Errorf("gh auth check failed: %s", errMsg)
	}
	return nil
}

// CurrentUser returns the login of the account gh is authenticated as
func (g *GitHub) CurrentUser(ctx context.Context, host string) (string, error) {
	out, err := cmd.OutputContext(ctx, "", "gh", "api", "user", "--hostname", host, "--jq", ".login")
	if err != nil {
		return "", fmt.Errorf("resolve GitHub user: %w", err)
	}
	login := strings.TrimSpace(string(out))
	if login == "" {
		return "", fmt.Errorf("resolve GitHub user: gh returned an empty login")
	}
	return login, nil
}

// GetRepo fetches repository and fork-parent info using gh CLI
func (g *GitHub) GetRepo(ctx context.Context, host, fullName string) (*Repo, error) {
	out, err := cmd.OutputContext(ctx, "", "gh", "repo", "view", githubRepoArg(host, fullName),
		"--json", "nameWithOwner,isFork,parent")
	if err != nil {
		if isGitHubNotFound(cmd.StderrOf(err)) {
			return nil, fmt.Errorf("%s: %w", fullName, ErrNotFound)
		}
		return nil, fmt.Errorf("gh repo view %s: %w", fullName, err)
	}
	return parseGitHubRepo(out)
}

// Fork forks fullName into the authenticated account without cloning
func (g *GitHub) Fork(ctx context.Context, host, fullName string) error {
	argv := g.ForkCommand(host, fullName)
	if err := cmd.RunContext(ctx, "", argv[0], argv[1:]...); err != nil {
		return fmt.Errorf("fork %s: %w", fullName, err)
	}
	return nil
}

// ForkCommand returns the gh invocation used by Fork
func (g *GitHub) ForkCommand(host, fullName string) []string {
	return []string{"gh", "repo", "fork", githubRepoArg(host, fullName), "--clone=false"}
}

// githubRepoArg formats a [HOST/]OWNER/REPO argument for gh.
func githubRepoArg(host, fullName string) string {
	if host == "" || strings.EqualFold(host, "github.com") {
		return fullName
	}
	return host + "/" + fullName
}

func isGitHubNotFound(stderr string) bool {
	return strings.Contains(stderr, "Could not resolve to a Repository") ||
		strings.Contains(stderr, "HTTP 404")
}

func parseGitHubRepo(data []byte) (*Repo, error) {
	var result struct {
		NameWithOwner string `json:"nameWithOwner"`
		IsFork        bool   `json:"isFork"`
		Parent        *struct {
			Name  string `json:"name"`
			Owner struct {
				Login string `json:"login"`
			} `json:"owner"`
		} `json:"parent"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}
	if result.NameWithOwner == "" {
		return nil, fmt.Errorf("failed to parse gh output: missing nameWithOwner")
	}

	repo := &Repo{
		FullName: result.NameWithOwner,
		IsFork:   result.IsFork,
	}
	if result.Parent != nil && result.Parent.Name != "" {
		repo.Parent = result.Parent.Owner.Login + "/" + result.Parent.Name
	}
	return repo, nil
}
