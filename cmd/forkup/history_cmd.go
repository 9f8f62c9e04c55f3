package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raphi011/forkup/internal/config"
	"github.com/raphi011/forkup/internal/journal"
	"github.com/raphi011/forkup/internal/log"
	"github.com/raphi011/forkup/internal/output"
	"github.com/raphi011/forkup/internal/ui/static"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit   int
		runID   string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "List journaled sync runs",
		GroupID: GroupJournal,
		Args:    cobra.NoArgs,
		Example: `  forkup history                 # most recent runs
  forkup history --run <id>      # changes made by one run
  forkup history --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			j, err := loadJournal(config.FromContext(ctx))
			if err != nil {
				return err
			}

			if runID != "" {
				entries := j.EntriesForRun(runID)
				if len(entries) == 0 {
					return fmt.Errorf("no run %q in journal", runID)
				}
				if jsonOut {
					return out.JSON(entries)
				}
				for _, r := range j.Runs() {
					if r.ID == runID {
						out.Println(static.RenderFields(runFields(r)))
					}
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{homeShortened(e.Path), e.Action().String(), e.OldURL})
				}
				out.Print(static.RenderTable([]string{"PATH", "ACTION", "PREVIOUS"}, rows))
				return nil
			}

			runs := j.Runs()
			if limit > 0 && len(runs) > limit {
				runs = runs[len(runs)-limit:]
			}
			if jsonOut {
				return out.JSON(runs)
			}
			if len(runs) == 0 {
				log.FromContext(ctx).Println("No journaled runs")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for i := len(runs) - 1; i >= 0; i-- {
				r := runs[i]
				rows = append(rows, []string{
					r.ID,
					r.Time.Local().Format("2006-01-02 15:04"),
					strconv.Itoa(r.Repos),
					strconv.Itoa(r.Actions),
				})
			}
			out.Print(static.RenderTable([]string{"RUN", "TIME", "REPOS", "ACTIONS"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Show at most this many runs (0 = all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the changes of a single run")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	return cmd
}

// runFields describes a run for the header of `history --run`.
func runFields(r journal.Run) [][2]string {
	return [][2]string{
		{"Run", r.ID},
		{"Time", r.Time.Local().Format("2006-01-02 15:04:05")},
		{"Repos", strconv.Itoa(r.Repos)},
		{"Actions", strconv.Itoa(r.Actions)},
	}
}

func loadJournal(cfg *config.Config) (*journal.Journal, error) {
	path, err := cfg.JournalPath()
	if err != nil {
		return nil, err
	}
	return journal.Load(path)
}
