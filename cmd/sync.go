package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bookmark-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fullSync    bool
	syncConfirm bool
)

// syncCmd mirrors the source into the destination once.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the bookmark export into the destination tree",
	Long: `Runs one sync from the configured source file into the managed
destination folder.

By default only the changes since the last successful sync are applied.
With --full every child of the managed folder is removed and rebuilt.

Examples:
  # Incremental sync
  sync

  # Full rebuild (with interactive confirmation)
  sync --full

  # Full rebuild, non-interactive
  sync --full --yes`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&fullSync, "full", false, "Clear the managed folder and rebuild it")
	syncCmd.Flags().BoolVar(&syncConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	mode := reconcile.ModeIncremental
	if fullSync {
		mode = reconcile.ModeFull
		if !confirmDestructiveAction(syncConfirm, fmt.Sprintf("Every bookmark under %q will be deleted and recreated.", env.cfg.Sync.RootTitle)) {
			env.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	env.logger.Info("Starting sync",
		zap.String("mode", string(mode)),
		zap.String("source", env.cfg.Sync.SourcePath),
		zap.String("root", env.cfg.Sync.RootTitle),
	)

	result, err := env.service().Run(ctx, mode)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	env.logger.Info("Sync complete",
		zap.Int("added", result.Stats.Added),
		zap.Int("updated", result.Stats.Updated),
		zap.Int("deleted", result.Stats.Deleted),
		zap.Int("unchanged", result.Stats.Unchanged),
		zap.Int("failed", result.Stats.Failed),
	)
	if result.Stats.Failed > 0 {
		env.logger.Warn("Some changes failed and will be retried by the next sync", zap.Int("failed", result.Stats.Failed))
	}
	return nil
}
