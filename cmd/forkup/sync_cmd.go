package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/forkup/internal/config"
	"github.com/raphi011/forkup/internal/journal"
	"github.com/raphi011/forkup/internal/log"
	"github.com/raphi011/forkup/internal/output"
	"github.com/raphi011/forkup/internal/rewire"
	"github.com/raphi011/forkup/internal/ui/progress"
	"github.com/raphi011/forkup/internal/ui/prompt"
	"github.com/raphi011/forkup/internal/ui/static"
	"github.com/raphi011/forkup/internal/ui/styles"
)

func newSyncCmd() *cobra.Command {
	var (
		walk     walkFlags
		apply    bool
		yes      bool
		protocol string
		upstream string
		noFork   bool
		only     []string
		jsonOut  bool
		script   bool
		copyOut  bool
	)

	cmd := &cobra.Command{
		Use:     "sync [root]",
		Short:   "Rewire origin and upstream remotes of every clone under root",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Rewire origin and upstream remotes of every clone under root.

Each repository is classified by its origin remote:
  own          origin belongs to you: normalize the URL to --protocol
  third-party  origin belongs to someone else: fork if needed, point origin
               at your fork and upstream at the original
  unmanaged    origin is on a host without a configured forge: skipped

Without --apply, the plan is printed and nothing changes. With --apply on a
terminal the plan is shown and confirmed first unless --yes is given.
Applied changes are journaled and can be undone with 'forkup revert'.`,
		Example: `  forkup sync ~/src                      # show what would change
  forkup sync ~/src --apply              # apply after confirmation
  forkup sync --apply -y --no-fork       # never create forks
  forkup sync --only widget --upstream keep
  forkup sync --script | sh              # review and run by hand
  forkup sync --copy                     # copy the plan as a script`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if apply && (script || copyOut) {
				return fmt.Errorf("--script and --copy print a plan and cannot be combined with --apply")
			}
			if jsonOut && script {
				return fmt.Errorf("--json and --script are mutually exclusive")
			}

			cfg := effectiveConfig(ctx)
			walk.apply(cmd, &cfg)
			if cmd.Flags().Changed("protocol") {
				cfg.Protocol = protocol
			}
			if cmd.Flags().Changed("upstream") {
				cfg.Upstream = upstream
			}
			if noFork {
				cfg.Fork = false
			}
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
			if paths, err = filterOnly(root, paths, only); err != nil {
				return err
			}
			if len(paths) == 0 {
				l.Printf("No repositories found under %s\n", homeShortened(root))
				return nil
			}

			forges, err := buildForges(&cfg, true)
			if err != nil {
				return err
			}
			users, err := resolveUsers(ctx, &cfg, forges)
			if err != nil {
				return err
			}
			opts, err := engineOptions(&cfg, users)
			if err != nil {
				return err
			}
			engine := rewire.New(forges, opts)

			s := &syncRun{
				ctx:    ctx,
				cfg:    &cfg,
				engine: engine,
				root:   root,
				runID:  journal.NewRunID(time.Now()),
			}

			if !apply {
				results, runErr := s.run(paths, true)
				switch {
				case script:
					out.Print(engine.Script(results))
				case jsonOut:
					if err := out.JSON(results); err != nil {
						return err
					}
				default:
					s.render(results)
				}
				if copyOut {
					if err := clipboard.WriteAll(engine.Script(results)); err != nil {
						l.Printf("Warning: failed to copy to clipboard: %v\n", err)
					} else {
						l.Println("Plan copied to clipboard as a shell script")
					}
				}
				return runErr
			}

			if !yes && !jsonOut && prompt.IsInteractive() {
				return s.confirmAndApply(paths)
			}

			results, runErr := s.run(paths, false)
			s.journal(results)
			if jsonOut {
				if err := out.JSON(results); err != nil {
					return err
				}
			} else {
				s.render(results)
			}
			return runErr
		},
	}

	walk.register(cmd)
	cmd.Flags().BoolVar(&apply, "apply", false, "Make the changes instead of printing the plan")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation with --apply")
	cmd.Flags().StringVar(&protocol, "protocol", "ssh", "Form of rewritten URLs: ssh or https")
	cmd.Flags().StringVar(&upstream, "upstream", config.UpstreamNormalize, "Upstream policy: normalize, keep or remove")
	cmd.Flags().BoolVar(&noFork, "no-fork", false, "Skip third-party repositories without an existing fork")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Limit to repositories with this directory name or relative path (repeatable)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&script, "script", false, "Print the plan as a shell script")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the plan as a shell script to the clipboard")

	cmd.MarkFlagsMutuallyExclusive("script", "json")

	return cmd
}

// syncRun carries the state of a single sync invocation.
type syncRun struct {
	ctx    context.Context
	cfg    *config.Config
	engine *rewire.Engine
	root   string
	runID  string
}

// run plans (and unless dryRun applies) every path with a progress bar.
func (s *syncRun) run(paths []string, dryRun bool) ([]rewire.Result, error) {
	l := log.FromContext(s.ctx)

	label := "Applying"
	if dryRun {
		label = "Planning"
	}
	bar := progress.NewBar(len(paths), label)
	if !l.IsVerbose() {
		bar.Start()
	}

	done := 0
	results, err := s.engine.Run(s.ctx, paths, dryRun, func(r rewire.Result) {
		done++
		bar.Set(done, label+" "+relPath(s.root, r.Path))
		if r.Status == rewire.StatusFailed {
			l.Debug("failed", "path", r.Path, "error", r.Error)
		}
	})
	bar.Stop()
	return results, err
}

// confirmAndApply shows the plan, asks once, then applies it.
func (s *syncRun) confirmAndApply(paths []string) error {
	l := log.FromContext(s.ctx)

	results, planErr := s.run(paths, true)
	s.render(results)

	repos, actions := countPlanned(results)
	if repos == 0 {
		l.Println("Nothing to apply")
		return planErr
	}

	answer, err := prompt.Confirm(fmt.Sprintf("Apply %d change(s) to %d repositories?", actions, repos))
	if err != nil {
		return err
	}
	if !answer.Confirmed {
		l.Println("Aborted, nothing changed")
		return nil
	}

	bar := progress.NewBar(repos, "Applying")
	if !l.IsVerbose() {
		bar.Start()
	}
	done := 0
	applyErr := s.engine.ApplyAll(s.ctx, results, func(r rewire.Result) {
		done++
		bar.Set(done, "Applying "+relPath(s.root, r.Path))
	})
	bar.Stop()

	s.journal(results)
	s.render(results)
	return applyErr
}

// journal records applied actions. Journal failures are reported but do not
// fail the run since the remotes have already changed.
func (s *syncRun) journal(results []rewire.Result) {
	now := time.Now()
	var entries []journal.Entry
	for _, r := range results {
		entries = append(entries, journal.FromResult(s.runID, now, r)...)
	}
	if len(entries) == 0 {
		return
	}

	l := log.FromContext(s.ctx)
	path, err := s.cfg.JournalPath()
	if err == nil {
		err = journal.Append(path, entries)
	}
	if err != nil {
		l.Printf("Warning: failed to journal changes: %v\n", err)
		return
	}
	l.Debug("journaled", "run", s.runID, "entries", len(entries))
}

func (s *syncRun) render(results []rewire.Result) {
	renderResults(s.ctx, s.root, results)
	log.FromContext(s.ctx).Println(summary(results))
}

// renderResults prints a results table to stdout.
func renderResults(ctx context.Context, root string, results []rewire.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		repo := r.FullName()
		if repo != "" {
			repo = styles.Link(webURL(r), repo)
		}
		rows = append(rows, []string{
			relPath(root, r.Path),
			repo,
			string(r.Kind),
			styles.Status(string(r.Status)),
			detail(r),
		})
	}
	output.FromContext(ctx).Print(static.RenderTable([]string{"PATH", "REPO", "KIND", "STATUS", "DETAIL"}, rows))
}

// detail describes what happened to a repository in one line.
func detail(r rewire.Result) string {
	switch r.Status {
	case rewire.StatusSkipped:
		return r.Reason
	case rewire.StatusFailed:
		return styles.ErrorStyle.Render(r.Error)
	case rewire.StatusApplied:
		return joinActions(r.Applied)
	default:
		return joinActions(r.Actions)
	}
}

func joinActions(actions []rewire.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, "; ")
}

func countPlanned(results []rewire.Result) (repos, actions int) {
	for _, r := range results {
		if r.Status == rewire.StatusPlanned {
			repos++
			actions += len(r.Actions)
		}
	}
	return repos, actions
}

// summary counts results per status, e.g. "3 planned, 1 skipped".
func summary(results []rewire.Result) string {
	order := []rewire.Status{
		rewire.StatusApplied,
		rewire.StatusPlanned,
		rewire.StatusUnchanged,
		rewire.StatusSkipped,
		rewire.StatusFailed,
	}
	counts := map[rewire.Status]int{}
	for _, r := range results {
		counts[r.Status]++
	}

	var parts []string
	for _, st := range order {
		if n := counts[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, st))
		}
	}
	if len(parts) == 0 {
		return "No repositories processed"
	}
	return strings.Join(parts, ", ")
}
