package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexzhou/ygocdb/internal/app"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update the local card snapshot",
	Long: `Sync probes the remote dataset version and, when it differs from the
local one, downloads cards.zip, decodes it and replaces the local snapshot
in one transaction. An up-to-date snapshot is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		application, err := app.NewApp(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		updated, err := application.Sync(cmd.Context(), force)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		if updated {
			fmt.Printf("Snapshot updated: %d cards, token %s\n",
				application.Store().Count(), application.Store().LocalToken())
		} else {
			fmt.Printf("Already up to date: %d cards, token %s\n",
				application.Store().Count(), application.Store().LocalToken())
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().Bool("force", false, "re-download the dataset even when the version token matches")
	rootCmd.AddCommand(syncCmd)
}
