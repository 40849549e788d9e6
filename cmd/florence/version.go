package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impact-cms/florence"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of florence",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("florence version %s\n", strings.TrimSpace(florence.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
