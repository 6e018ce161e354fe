package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexzhou/ygocdb/internal/app"
)

var prereleaseCmd = &cobra.Command{
	Use:   "prerelease [query]",
	Short: "List pre-release cards",
	Long: `Prerelease fetches the pre-release dataset and lists its cards,
optionally filtered by a query. The dataset is cached in memory and only
re-downloaded when the remote resource reports a change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		application, err := app.NewApp(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		if force {
			if _, err := application.PreRelease().Fetch(cmd.Context(), true); err != nil {
				return fmt.Errorf("failed to fetch pre-release dataset: %w", err)
			}
		}

		cards, err := application.PreRelease().Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to fetch pre-release dataset: %w", err)
		}

		if len(cards) == 0 {
			fmt.Println("No pre-release cards matched.")
			return nil
		}
		for _, card := range cards {
			badge := card.StatusLabel()
			if badge != "" {
				badge = " [" + badge + "]"
			}
			fmt.Printf("%-10d %s%s (updated %s)\n", card.ID, card.Name, badge, card.UpdateDate())
		}
		return nil
	},
}

func init() {
	prereleaseCmd.Flags().Bool("force", false, "re-download the dataset even when unchanged")
	rootCmd.AddCommand(prereleaseCmd)
}
