package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetConfirm bool

// stateCmd groups the SyncState commands.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the stored sync state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored sync state as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		st, err := env.service().State(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored sync state",
	Long: `Deletes the stored sync state. The next incremental sync then treats
every source bookmark as new.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		if !confirmDestructiveAction(resetConfirm, "The stored sync state will be deleted.") {
			env.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		if err := env.service().Reset(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset state: %w", err)
		}
		return nil
	},
}

func init() {
	stateResetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "Auto-confirm (non-interactive)")
	stateCmd.AddCommand(stateShowCmd, stateResetCmd)
	RootCmd.AddCommand(stateCmd)
}
