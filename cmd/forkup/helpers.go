package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/forkup/internal/config"
	"github.com/raphi011/forkup/internal/discover"
	"github.com/raphi011/forkup/internal/forge"
	"github.com/raphi011/forkup/internal/log"
	"github.com/raphi011/forkup/internal/remote"
	"github.com/raphi011/forkup/internal/rewire"
	"github.com/raphi011/forkup/internal/ui/progress"
)

// walkFlags are the discovery flags shared by sync and scan.
type walkFlags struct {
	maxDepth    int
	ignore      []string
	ignoreGlobs []string
	user        string
}

func (f *walkFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", config.DefaultMaxDepth, "Directory levels below root to search (-1 = unlimited)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "Skip directories whose path contains this token (repeatable)")
	cmd.Flags().StringSliceVar(&f.ignoreGlobs, "ignore-glob", nil, "Skip directories matching this pattern, ** allowed (repeatable)")
	cmd.Flags().StringVar(&f.user, "user", "", "Acting username on every host (default: ask gh/glab)")
}

// apply overlays explicitly set flags onto cfg.
func (f *walkFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	cfg.Ignore = append(cfg.Ignore, f.ignore...)
	cfg.IgnoreGlobs = append(cfg.IgnoreGlobs, f.ignoreGlobs...)
	if f.user != "" {
		cfg.User = f.user
		cfg.Users = nil
	}
}

// effectiveConfig copies the loaded config so flags can be applied without
// touching the shared instance.
func effectiveConfig(ctx context.Context) config.Config {
	cfg := *config.FromContext(ctx)
	cfg.Ignore = append([]string(nil), cfg.Ignore...)
	cfg.IgnoreGlobs = append([]string(nil), cfg.IgnoreGlobs...)
	return cfg
}

// resolveRoot picks the scan root: argument, then config, then the
// working directory.
func resolveRoot(args []string, cfg *config.Config) (string, error) {
	root := cfg.Root
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}
	return abs, nil
}

// discoverRepos walks root with a spinner on stderr.
func discoverRepos(ctx context.Context, root string, cfg *config.Config) ([]string, error) {
	opts := discover.Options{
		MaxDepth:     cfg.MaxDepth,
		IgnoreTokens: cfg.Ignore,
		IgnoreGlobs:  cfg.IgnoreGlobs,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sp := progress.NewSpinner("Discovering repositories in " + root)
	sp.Start()
	paths, err := discover.Walk(ctx, root, opts)
	sp.Stop()
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Debug("discovered", "root", root, "repos", len(paths))
	return paths, nil
}

// buildForges returns a forge per managed host. When requireTools is set,
// a missing gh or glab aborts.
func buildForges(cfg *config.Config, requireTools bool) (map[string]forge.Forge, error) {
	forges := make(map[string]forge.Forge, len(cfg.Hosts))
	for _, host := range cfg.HostNames() {
		f := forge.ByName(cfg.Hosts[host])
		if requireTools {
			if err := forge.CheckTool(forgeTool(f.Name())); err != nil {
				return nil, fmt.Errorf("host %s: %w", host, err)
			}
		}
		forges[host] = f
	}
	return forges, nil
}

func forgeTool(name string) string {
	if name == forge.NameGitLab {
		return "glab"
	}
	return "gh"
}

// resolveUsers determines the acting user per host. Configured users win;
// otherwise the forge CLI is asked. Any host left without a user aborts.
func resolveUsers(ctx context.Context, cfg *config.Config, forges map[string]forge.Forge) (map[string]string, error) {
	l := log.FromContext(ctx)
	users := make(map[string]string, len(forges))
	for _, host := range cfg.HostNames() {
		if u := cfg.UserFor(host); u != "" {
			users[host] = u
			continue
		}
		u, err := forges[host].CurrentUser(ctx, host)
		if err != nil {
			return nil, fmt.Errorf("cannot determine username for %s (set --user or [users] in config): %w", host, err)
		}
		l.Debug("resolved user", "host", host, "user", u)
		users[host] = u
	}
	return users, nil
}

// configuredUsers returns users known from configuration alone.
func configuredUsers(cfg *config.Config) map[string]string {
	users := map[string]string{}
	for _, host := range cfg.HostNames() {
		if u := cfg.UserFor(host); u != "" {
			users[host] = u
		}
	}
	return users
}

// engineOptions converts config into rewire options.
func engineOptions(cfg *config.Config, users map[string]string) (rewire.Options, error) {
	proto, err := remote.ParseProtocol(cfg.Protocol)
	if err != nil {
		return rewire.Options{}, err
	}
	return rewire.Options{
		Users:    users,
		Protocol: proto,
		Upstream: rewire.Policy(cfg.Upstream),
		Fork:     cfg.Fork,
	}, nil
}

// filterOnly keeps repositories whose directory name or root-relative path
// matches one of names. Unknown names are an error with fuzzy suggestions.
func filterOnly(root string, paths, names []string) ([]string, error) {
	if len(names) == 0 {
		return paths, nil
	}

	candidates := make([]string, 0, len(paths))
	byName := map[string][]string{}
	for _, p := range paths {
		rel := relPath(root, p)
		base := filepath.Base(p)
		byName[base] = append(byName[base], p)
		if rel != base {
			byName[rel] = append(byName[rel], p)
		}
		candidates = append(candidates, rel)
	}

	seen := map[string]bool{}
	var out []string
	var unknown []string
	for _, name := range names {
		matches, ok := byName[strings.Trim(name, "/")]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		for _, p := range matches {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}

	if len(unknown) > 0 {
		var b strings.Builder
		for _, name := range unknown {
			fmt.Fprintf(&b, "no repository named %q", name)
			if s := suggest(name, candidates); len(s) > 0 {
				fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(s, ", "))
			}
			b.WriteString("; ")
		}
		return nil, fmt.Errorf("%s", strings.TrimSuffix(b.String(), "; "))
	}

	sort.Strings(out)
	return out, nil
}

// suggest returns up to three fuzzy matches for name.
func suggest(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// relPath returns p relative to root for display, or p itself.
func relPath(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

// webURL links a result to its repository page.
func webURL(r rewire.Result) string {
	if r.Host == "" || r.Owner == "" || r.Kind == rewire.KindUnmanaged {
		return ""
	}
	return "https://" + r.Host + "/" + r.FullName()
}

// homeShortened replaces the home directory prefix with ~.
func homeShortened(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if p == home {
		return "~"
	}
	if strings.HasPrefix(p, home+string(filepath.Separator)) {
		return "~" + p[len(home):]
	}
	return p
}

// configFile returns the config path from --config or FORKUP_CONFIG.
// Empty means the default location.
func configFile() string {
	if configPath != "" {
		return configPath
	}
	return os.Getenv("FORKUP_CONFIG")
}
