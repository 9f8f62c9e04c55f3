package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/forkup/internal/forge"
)

// Upstream policies.
const (
	UpstreamNormalize = "normalize"
	UpstreamKeep      = "keep"
	UpstreamRemove    = "remove"
)

// ValidUpstreamPolicies lists accepted values for upstream.
var ValidUpstreamPolicies = []string{UpstreamNormalize, UpstreamKeep, UpstreamRemove}

// DefaultMaxDepth is how many directory levels below root are searched.
const DefaultMaxDepth = 3

// Config holds the forkup configuration
type Config struct {
	Root        string            `toml:"root"`         // directory to scan, must be absolute or start with ~
	MaxDepth    int               `toml:"max_depth"`    // negative = unlimited
	Protocol    string            `toml:"protocol"`     // "ssh" or "https"
	User        string            `toml:"user"`         // acting user for every host (empty = ask the forge CLI)
	Upstream    string            `toml:"upstream"`     // "normalize", "keep" or "remove"
	Fork        bool              `toml:"fork"`         // create missing forks
	Ignore      []string          `toml:"ignore"`       // path substrings to skip
	IgnoreGlobs []string          `toml:"ignore_globs"` // doublestar patterns to skip
	Hosts       map[string]string `toml:"hosts"`        // managed host -> forge type
	Users       map[string]string `toml:"users"`        // per-host user override
	Journal     string            `toml:"journal"`      // journal file path (empty = ~/.forkup/journal.json)
}

// Default returns the default configuration
func Default() Config {
	return Config{
		MaxDepth: DefaultMaxDepth,
		Protocol: "ssh",
		Upstream: UpstreamNormalize,
		Fork:     true,
		Hosts:    map[string]string{"github.com": "github"},
	}
}

// UserFor returns the configured user for host: a per-host entry wins
// over the global user. Empty means it must be resolved via the forge.
func (c *Config) UserFor(host string) string {
	if u, ok := c.Users[host]; ok && u != "" {
		return u
	}
	return c.User
}

// HostNames returns the managed hosts in sorted order.
func (c *Config) HostNames() []string {
	hosts := make([]string, 0, len(c.Hosts))
	for h := range c.Hosts {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

// JournalPath returns the journal file location.
func (c *Config) JournalPath() (string, error) {
	if c.Journal != "" {
		return c.Journal, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".forkup", "journal.json"), nil
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "forkup", "config.toml"), nil
}

// Load reads config from path (DefaultPath() when empty), then applies
// environment overrides and validates the result.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return Default(), err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Default(), err
	}
	if err := cfg.Finalize(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path on top of Default().
func LoadFile(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	// An explicit [hosts] table replaces the default instead of merging.
	cfg.Hosts = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Hosts == nil {
		cfg.Hosts = Default().Hosts
	}
	return cfg, nil
}

// ApplyEnv overrides settings from FORKUP_* environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("FORKUP_ROOT"); ok && v != "" {
		c.Root = v
	}
	if v, ok := lookup("FORKUP_USER"); ok && v != "" {
		// Applies to every host, like --user.
		c.User = v
		c.Users = nil
	}
	if v, ok := lookup("FORKUP_PROTOCOL"); ok && v != "" {
		c.Protocol = v
	}
	if v, ok := lookup("FORKUP_UPSTREAM"); ok && v != "" {
		c.Upstream = v
	}
	if v, ok := lookup("FORKUP_MAX_DEPTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FORKUP_MAX_DEPTH %q: %w", v, err)
		}
		c.MaxDepth = n
	}
	if v, ok := lookup("FORKUP_IGNORE"); ok && v != "" {
		c.Ignore = append(c.Ignore, splitList(v)...)
	}
	if v, ok := lookup("FORKUP_NO_FORK"); ok && v != "" {
		noFork, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FORKUP_NO_FORK %q: %w", v, err)
		}
		c.Fork = !noFork
	}
	return nil
}

// splitList splits a comma separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Finalize validates the configuration and normalizes paths and hosts.
func (c *Config) Finalize() error {
	if err := ValidatePath(c.Root, "root"); err != nil {
		return err
	}
	root, err := expandPath(c.Root)
	if err != nil {
		return fmt.Errorf("expand root: %w", err)
	}
	c.Root = root

	if err := ValidatePath(c.Journal, "journal"); err != nil {
		return err
	}
	journal, err := expandPath(c.Journal)
	if err != nil {
		return fmt.Errorf("expand journal: %w", err)
	}
	c.Journal = journal

	c.Protocol = strings.ToLower(c.Protocol)
	if c.Protocol != "ssh" && c.Protocol != "https" {
		return fmt.Errorf("invalid protocol %q: must be \"ssh\" or \"https\"", c.Protocol)
	}

	c.Upstream = strings.ToLower(c.Upstream)
	switch c.Upstream {
	case UpstreamNormalize, UpstreamKeep, UpstreamRemove:
	default:
		return fmt.Errorf("invalid upstream %q: must be one of %s", c.Upstream, strings.Join(ValidUpstreamPolicies, ", "))
	}

	if len(c.Hosts) == 0 {
		return errors.New("hosts must list at least one managed host")
	}
	hosts := make(map[string]string, len(c.Hosts))
	for host, forgeType := range c.Hosts {
		forgeType = strings.ToLower(forgeType)
		if !slices.Contains(forge.ValidNames, forgeType) {
			return fmt.Errorf("invalid forge type %q for host %q: must be one of %s", forgeType, host, strings.Join(forge.ValidNames, ", "))
		}
		hosts[strings.ToLower(host)] = forgeType
	}
	c.Hosts = hosts

	if len(c.Users) > 0 {
		users := make(map[string]string, len(c.Users))
		for host, user := range c.Users {
			host = strings.ToLower(host)
			if _, ok := c.Hosts[host]; !ok {
				return fmt.Errorf("users entry for %q does not match any managed host", host)
			}
			users[host] = user
		}
		c.Users = users
	}

	return nil
}

type ctxKey struct{}

// WithConfig attaches the configuration to the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the configuration attached to ctx, or defaults.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	cfg := Default()
	return &cfg
}
