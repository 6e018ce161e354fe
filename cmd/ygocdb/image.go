package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexzhou/ygocdb/internal/app"
	"github.com/hexzhou/ygocdb/internal/domain"
)

var imageCmd = &cobra.Command{
	Use:   "image <card-id>",
	Short: "Fetch a card image into the cache",
	Long: `Image downloads a card image through the two-tier cache and prints
the resolved bytes to the given output file, or just warms the cache when no
output is set. Repeated fetches of the same image are served locally.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetString("size")
		output, _ := cmd.Flags().GetString("output")

		cardID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("card id must be numeric: %q", args[0])
		}

		application, err := app.NewApp(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()

		card := domain.Card{ID: cardID}
		base := application.Config().ImageBaseURL

		var url string
		switch size {
		case "thumb":
			url = card.ThumbnailURL(base)
		case "half":
			url = card.HalfImageURL(base)
		case "full":
			url = card.FullImageURL(base)
		default:
			return fmt.Errorf("unknown size %q, want thumb, half or full", size)
		}

		data, err := application.Images().FetchAndCache(cmd.Context(), url)
		if err != nil {
			return fmt.Errorf("failed to fetch image: %w", err)
		}

		if output != "" {
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(data), output)
		} else {
			fmt.Printf("Cached %d bytes (cache size now %s)\n", len(data), application.Images().FormattedSize())
		}
		return nil
	},
}

func init() {
	imageCmd.Flags().String("size", "full", "image variant: thumb, half or full")
	imageCmd.Flags().StringP("output", "o", "", "write the image to this file")
	rootCmd.AddCommand(imageCmd)
}
