package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/impact-cms/florence/pkg/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, false)

		assistant, closeData, err := buildAssistant(settings, logger)
		if err != nil {
			return err
		}
		defer closeData()

		claimID, _ := cmd.Flags().GetInt64("claim")
		jsonMode, _ := cmd.Flags().GetBool("json")

		question := strings.Join(args, " ")
		resp, err := assistant.HandleTurn(cmd.Context(), domain.NewThreadState(), question, domain.TurnContext{ClaimID: claimID})
		if err != nil {
			return err
		}

		if jsonMode {
			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		fmt.Println(resp.Answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().Int64("claim", 0, "Scope the question to a claim ID")
	askCmd.Flags().Bool("json", false, "Print the full response as JSON")
}
