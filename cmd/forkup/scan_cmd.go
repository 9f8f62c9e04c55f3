package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/forkup/internal/log"
	"github.com/raphi011/forkup/internal/output"
	"github.com/raphi011/forkup/internal/rewire"
	"github.com/raphi011/forkup/internal/ui/static"
	"github.com/raphi011/forkup/internal/ui/styles"
)

func newScanCmd() *cobra.Command {
	var (
		walk    walkFlags
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "scan [root]",
		Short:   "List discovered repositories and how sync would classify them",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `List discovered repositories and how sync would classify them.

scan only reads local remotes and never talks to the forge. Telling own
repositories from third-party ones needs a username from --user or the
config file; without one those repositories show the missing user.`,
		Example: `  forkup scan ~/src
  forkup scan --user octocat --max-depth 1
  forkup scan --json | jq '.[] | select(.kind == "third-party") | .path'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			cfg := effectiveConfig(ctx)
			walk.apply(cmd, &cfg)
			if err := cfg.Finalize(); err != nil {
				return err
			}

			root, err := resolveRoot(args, &cfg)
			if err != nil {
				return err
			}
			paths, err := discoverRepos(ctx, root, &cfg)
			if err != nil {
				return err
			}

			forges, err := buildForges(&cfg, false)
			if err != nil {
				return err
			}
			opts, err := engineOptions(&cfg, configuredUsers(&cfg))
			if err != nil {
				return err
			}
			engine := rewire.New(forges, opts)

			results := make([]rewire.Result, 0, len(paths))
			for _, p := range paths {
				if err := ctx.Err(); err != nil {
					return err
				}
				results = append(results, engine.Classify(ctx, p))
			}

			if jsonOut {
				return out.JSON(results)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				note := r.Reason
				if r.Error != "" {
					note = styles.WarningStyle.Render(r.Error)
				}
				rows = append(rows, []string{
					relPath(root, r.Path),
					r.Host,
					styles.Link(webURL(r), r.FullName()),
					string(r.Kind),
					note,
				})
			}
			out.Print(static.RenderTable([]string{"PATH", "HOST", "REPO", "KIND", "NOTE"}, rows))
			log.FromContext(ctx).Printf("%d repositories under %s\n", len(results), homeShortened(root))
			return nil
		},
	}

	walk.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")

	return cmd
}
