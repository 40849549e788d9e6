package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "florence",
	Short: "Florence answers questions about your claims and billing",
	Long: `Florence is the conversational query layer of the case management
system. It answers billing and claim questions deterministically from
the database, and falls back to a local model only when it has to.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "florence.yaml", "Path to the settings file")
	rootCmd.PersistentFlags().String("db", "", "Path to the CMS SQLite database (overrides settings)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}
