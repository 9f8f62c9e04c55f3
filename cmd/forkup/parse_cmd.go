package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/raphi011/forkup/internal/config"
	"github.com/raphi011/forkup/internal/forge"
	"github.com/raphi011/forkup/internal/output"
	"github.com/raphi011/forkup/internal/remote"
	"github.com/raphi011/forkup/internal/rewire"
	"github.com/raphi011/forkup/internal/ui/static"
)

func newParseCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "parse <url>...",
		Short:       "Show how remote URLs are understood",
		GroupID:     GroupUtility,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		Example: `  forkup parse git@github.com:acme/widget.git
  forkup parse https://gitlab.com/group/sub/project ssh://git@host:2222/o/r.git`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			cfg := config.FromContext(ctx)

			var errs *multierror.Error
			var parsed []remote.Remote
			rows := make([][]string, 0, len(args))
			for _, raw := range args {
				r, err := remote.Parse(raw)
				if err != nil {
					errs = multierror.Append(errs, err)
					continue
				}
				parsed = append(parsed, r)
				rows = append(rows, []string{r.Raw, string(r.Protocol), r.Host, r.Owner, r.Repo, forgeColumn(cfg, r.Host)})
			}

			if jsonOut {
				if err := out.JSON(parsed); err != nil {
					return err
				}
			} else {
				out.Print(static.RenderTable([]string{"URL", "PROTOCOL", "HOST", "OWNER", "REPO", "FORGE"}, rows))
			}

			if err := errs.ErrorOrNil(); err != nil {
				return fmt.Errorf("%d of %d URLs could not be parsed: %w", len(errs.Errors), len(args), err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print parsed remotes as JSON")

	return cmd
}

// forgeColumn names the forge that would handle host, marking hosts that
// sync leaves alone.
func forgeColumn(cfg *config.Config, host string) string {
	managed, ok := rewire.ManagedHost(host, cfg.Hosts)
	if !ok {
		return forge.Detect(host, cfg.Hosts).Name() + " (unmanaged)"
	}
	return forge.Detect(managed, cfg.Hosts).Name()
}
