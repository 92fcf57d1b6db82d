package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"bookmark-sync/core/reconcile"

	"github.com/spf13/cobra"
)

// diffCmd previews a sync without changing anything.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show what the next sync would change",
	Long: `Compares the source export with the managed destination folder and
prints the bookmarks and folders a sync would add, remove or update.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		env, err := setup(ctx)
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		if jsonOutput {
			report, err := env.service().Diff(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute diff: %w", err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		diff, err := env.service().Compute(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute diff: %w", err)
		}
		return reconcile.FormatReport(os.Stdout, diff)
	},
}

func init() {
	diffCmd.Flags().Bool("json", false, "Output the report as JSON")
	RootCmd.AddCommand(diffCmd)
}
