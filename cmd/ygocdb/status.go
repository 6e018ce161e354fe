package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexzhou/ygocdb/internal/app"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show local snapshot and cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		if err := application.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}

		store := application.Store()
		if !store.Loaded() {
			fmt.Println("No local snapshot. Run 'ygocdb sync'.")
		} else {
			fmt.Printf("Cards:       %d\n", store.Count())
			fmt.Printf("Token:       %s\n", store.LocalToken())
			fmt.Printf("Snapshot:    %.1f MB\n", float64(store.DataSize())/(1<<20))
		}
		fmt.Printf("Image cache: %s\n", application.Images().FormattedSize())
		fmt.Printf("Data dir:    %s\n", application.Paths().DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
