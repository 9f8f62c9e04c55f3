package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/forkup/internal/config"
	"github.com/raphi011/forkup/internal/forge"
	"github.com/raphi011/forkup/internal/git"
	"github.com/raphi011/forkup/internal/journal"
	"github.com/raphi011/forkup/internal/output"
	"github.com/raphi011/forkup/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "doctor",
		Short:       "Check tools, authentication and configuration",
		GroupID:     GroupUtility,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Long: `Check tools, authentication and configuration.

Checks:
- git is installed
- the config file parses and is valid
- gh/glab is installed and authenticated for every managed host
- the acting username can be determined for every managed host
- the journal is readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			var issues int

			ok := func(format string, a ...any) {
				out.Println(styles.SuccessStyle.Render("✓") + " " + fmt.Sprintf(format, a...))
			}
			bad := func(format string, a ...any) {
				out.Println(styles.ErrorStyle.Render("✕") + " " + fmt.Sprintf(format, a...))
				issues++
			}

			if err := git.CheckGit(); err != nil {
				bad("git: %v", err)
			} else {
				ok("git is available")
			}

			cfg, err := config.Load(configFile())
			if err != nil {
				bad("config: %v", err)
				cfg = *config.FromContext(ctx)
			} else {
				ok("config is valid")
			}

			forges, _ := buildForges(&cfg, false)
			for _, host := range cfg.HostNames() {
				f := forges[host]
				tool := forgeTool(f.Name())
				if err := forge.CheckTool(tool); err != nil {
					bad("%s: %v", host, err)
					continue
				}
				if err := f.Check(ctx, host); err != nil {
					bad("%s: %s is not authenticated: %v", host, tool, err)
					continue
				}
				ok("%s: %s is authenticated", host, tool)

				if u := cfg.UserFor(host); u != "" {
					ok("%s: acting user %s (configured)", host, u)
				} else if u, err := f.CurrentUser(ctx, host); err != nil {
					bad("%s: cannot determine username: %v", host, err)
				} else {
					ok("%s: acting user %s", host, u)
				}
			}

			jpath, err := cfg.JournalPath()
			if err == nil {
				_, err = journal.Load(jpath)
			}
			if err != nil {
				bad("journal: %v", err)
			} else {
				ok("journal is readable (%s)", homeShortened(jpath))
			}

			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}
			return nil
		},
	}

	return cmd
}
