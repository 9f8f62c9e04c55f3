package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/forkup/internal/config"
	"github.com/raphi011/forkup/internal/journal"
	"github.com/raphi011/forkup/internal/log"
	"github.com/raphi011/forkup/internal/rewire"
)

func newRevertCmd() *cobra.Command {
	var (
		runID string
		apply bool
	)

	cmd := &cobra.Command{
		Use:     "revert",
		Short:   "Restore remotes changed by a sync run",
		GroupID: GroupJournal,
		Args:    cobra.NoArgs,
		Long: `Restore remotes changed by a sync run.

Actions of the run are undone in reverse order: rewritten URLs are set back,
added remotes are removed and removed remotes are added again. Forks created
by the run are left in place.

Without --apply, the revert plan is printed and nothing changes.`,
		Example: `  forkup revert                  # show how the last run would be undone
  forkup revert --apply
  forkup revert --run <id> --apply`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			cfg := config.FromContext(ctx)

			j, err := loadJournal(cfg)
			if err != nil {
				return err
			}
			if runID == "" {
				runID = j.LastRun()
			}
			if runID == "" {
				return fmt.Errorf("journal is empty, nothing to revert")
			}
			entries := j.EntriesForRun(runID)
			if len(entries) == 0 {
				return fmt.Errorf("no run %q in journal", runID)
			}

			engine := rewire.New(nil, rewire.Options{})
			paths, actions := journal.ByPath(entries)

			results := make([]rewire.Result, 0, len(paths))
			for _, p := range paths {
				if err := ctx.Err(); err != nil {
					return err
				}
				results = append(results, engine.Revert(ctx, p, actions[p], !apply))
			}

			if apply {
				s := &syncRun{ctx: ctx, cfg: cfg, engine: engine, runID: journal.NewRunID(time.Now())}
				s.journal(results)
			} else {
				l.Printf("Reverting run %s (dry run, use --apply to change remotes)\n", runID)
			}

			renderResults(ctx, "", results)
			l.Println(summary(results))
			return rewire.Errors(results)
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run to revert (default: most recent)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Make the changes instead of printing the plan")

	return cmd
}
