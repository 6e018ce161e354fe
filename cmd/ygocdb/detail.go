package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexzhou/ygocdb/internal/app"
)

var detailCmd = &cobra.Command{
	Use:   "detail <card-id>",
	Short: "Fetch the full detail of one card",
	Long: `Detail fetches the per-card payload from the remote API, including
official rulings and release packs that the bulk snapshot does not carry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("card id must be numeric: %q", args[0])
		}

		application, err := app.NewApp(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		detail, err := application.YGODB().FetchCardDetail(cmd.Context(), cardID)
		if err != nil {
			return fmt.Errorf("failed to fetch card detail: %w", err)
		}

		fmt.Printf("%s (%d)\n", detail.CnName, detail.ID)
		if detail.JpName != "" {
			fmt.Printf("JP: %s\n", detail.JpName)
		}
		if detail.EnName != "" {
			fmt.Printf("EN: %s\n", detail.EnName)
		}
		if detail.Text != nil {
			fmt.Printf("\n%s\n", detail.Text.Types)
			if detail.Text.Pdesc != "" {
				fmt.Printf("\n%s\n", detail.Text.Pdesc)
			}
			fmt.Printf("\n%s\n", detail.Text.Desc)
		}

		if len(detail.JpPacks) > 0 {
			fmt.Println("\nReleases:")
			for _, pack := range detail.JpPacks {
				fmt.Printf("  %-12s %-10s %s\n", pack.SetID, pack.Date, pack.Name)
			}
		}

		if len(detail.Faqs) > 0 {
			fmt.Printf("\nRulings (%d):\n", len(detail.Faqs))
			for _, qa := range detail.Faqs {
				fmt.Printf("\nQ: %s\n", qa.CleanQuestion())
				fmt.Printf("A: %s\n", qa.CleanAnswer())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
}
