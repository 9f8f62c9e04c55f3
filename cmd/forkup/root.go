package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/forkup/internal/config"
	"github.com/raphi011/forkup/internal/git"
	"github.com/raphi011/forkup/internal/log"
	"github.com/raphi011/forkup/internal/output"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	configPath string
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupJournal = "journal"
	GroupUtility = "utility"
)

// skipConfig marks commands that must work with a broken or missing config.
const skipConfig = "skip-config"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forkup",
		Short: "Point every clone's origin at your own fork",
		Long: `forkup walks a directory tree of git clones and rewires their remotes.

For each repository, origin is pointed at your account's copy: your own
repositories are normalized to the preferred protocol, third-party ones are
forked (via gh or glab) when needed and origin moves to the fork while
upstream tracks the original project.

Nothing is changed unless --apply is given.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))

			cfg, err := config.Load(configFile())
			if err != nil {
				if cmd.Annotations[skipConfig] == "" {
					return err
				}
				log.FromContext(ctx).Printf("Warning: %v\n", err)
			}
			ctx = config.WithConfig(ctx, &cfg)
			cmd.SetContext(ctx)

			return git.CheckGit()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/forkup/config.toml, env FORKUP_CONFIG)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupJournal, Title: "Journal Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newScanCmd())

	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newRevertCmd())

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Colors are dropped when stdout is piped or NO_COLOR is set.
	ctx = output.WithPrinter(ctx, colorprofile.NewWriter(os.Stdout, os.Environ()))

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cancel()
		os.Exit(1)
	}
}
