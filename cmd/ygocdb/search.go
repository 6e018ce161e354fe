package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexzhou/ygocdb/internal/app"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the local card snapshot",
	Long: `Search matches the query case-insensitively against every card name
variant and the effect text, and exactly against the card password. It only
reads the local snapshot; run sync first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		query := strings.Join(args, " ")

		application, err := app.NewApp(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		if err := application.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		if !application.Store().Loaded() {
			return fmt.Errorf("no local snapshot found, run 'ygocdb sync' first")
		}

		results := application.Store().Search(query)
		if len(results) == 0 {
			fmt.Println("No cards matched.")
			return nil
		}

		shown := results
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		for _, card := range shown {
			fmt.Printf("%-10d %s\n", card.ID, card.DisplayName())
			if line := card.TypesLine(); line != "" {
				fmt.Printf("           %s\n", strings.ReplaceAll(line, "\n", " "))
			}
		}
		if len(shown) < len(results) {
			fmt.Printf("... and %d more (raise --limit to see them)\n", len(results)-len(shown))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of results to print, 0 for all")
	rootCmd.AddCommand(searchCmd)
}
