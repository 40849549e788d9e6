package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/impact-cms/florence/internal/adapters/sqlite"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo billing database",
	Long: `Creates the billing schema at the configured database path and fills
it with a small demo dataset. Existing data is left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if err := sqlite.Seed(settings.DatabasePath); err != nil {
			return err
		}
		fmt.Printf("Demo database ready at %s\n", settings.DatabasePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
