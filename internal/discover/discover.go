// Package discover finds repository roots below a directory.
package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/raphi011/forkup/internal/git"
	"github.com/raphi011/forkup/internal/log"
)

// Options control which directories are visited.
type Options struct {
	// MaxDepth limits how far below root the walk goes; root is depth 0.
	// Negative means unlimited.
	MaxDepth int
	// IgnoreTokens skip any directory whose root-relative path contains one
	// of them as a substring.
	IgnoreTokens []string
	// IgnoreGlobs skip any directory whose root-relative path matches one of
	// these doublestar patterns.
	IgnoreGlobs []string
}

// Validate checks the glob patterns.
func (o Options) Validate() error {
	for _, g := range o.IgnoreGlobs {
		if _, err := doublestar.Match(g, ""); err != nil {
			return fmt.Errorf("invalid ignore glob %q: %w", g, err)
		}
	}
	return nil
}

// Walk returns the repository roots below root in lexical order.
// Repository roots are not descended into. Unreadable directories are
// logged and skipped.
func Walk(ctx context.Context, root string, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	l := log.FromContext(ctx)
	var repos []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			l.Printf("Skipping %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		if path != root {
			rel, _ := filepath.Rel(root, path)
			rel = filepath.ToSlash(rel)

			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if opts.MaxDepth >= 0 && depth(rel) > opts.MaxDepth {
				return filepath.SkipDir
			}
			if reason := ignored(rel, opts); reason != "" {
				l.Debug("ignoring directory", "path", rel, "rule", reason)
				return filepath.SkipDir
			}
		}

		if git.IsRepoRoot(path) {
			repos = append(repos, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipDir) {
		return repos, err
	}

	return repos, nil
}

// depth counts path segments of a slash-separated relative path.
func depth(rel string) int {
	return strings.Count(rel, "/") + 1
}

// ignored returns the rule that excludes rel, or "".
func ignored(rel string, opts Options) string {
	for _, tok := range opts.IgnoreTokens {
		if tok != "" && strings.Contains(rel, tok) {
			return tok
		}
	}
	for _, g := range opts.IgnoreGlobs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return g
		}
	}
	return ""
}
