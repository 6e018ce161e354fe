package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hexzhou/ygocdb/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a starter config.yaml",
	Long: `Init writes a config.yaml with every option set to its default into
the given directory (current directory if omitted). It refuses to overwrite
an existing file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		path := filepath.Join(dir, "config.yaml")
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
