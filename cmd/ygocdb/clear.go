package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexzhou/ygocdb/internal/app"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the local snapshot",
	Long: `Clear removes the persisted card snapshot and its version token, so
the next sync downloads the dataset from scratch. With --images the image
cache is wiped as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		images, _ := cmd.Flags().GetBool("images")

		application, err := app.NewApp(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		if err := application.Store().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
		fmt.Println("Snapshot cleared.")

		if images {
			size := application.Images().FormattedSize()
			if err := application.Images().Clear(); err != nil {
				return fmt.Errorf("failed to clear image cache: %w", err)
			}
			fmt.Printf("Image cache cleared (%s freed).\n", size)
		}
		return nil
	},
}

func init() {
	clearCmd.Flags().Bool("images", false, "also wipe the image cache")
	rootCmd.AddCommand(clearCmd)
}
