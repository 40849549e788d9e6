package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/impact-cms/florence/internal/presentation/tui"
	"github.com/impact-cms/florence/pkg/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question session",
	Long: `Opens a terminal conversation with Florence. State carries across
questions, so follow-ups like "what about closed ones?" work. Type
"exit" or press Ctrl-D to leave.`,
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

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		width := 0
		if interactive {
			tui.PrintBanner()
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
		}
		render := tui.NewRenderer(width)

		state := domain.NewThreadState()
		var lastAction *domain.Action

		scanner := bufio.NewScanner(os.Stdin)
		for {
			if interactive {
				fmt.Print("you> ")
			}
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}
			if question == "exit" || question == "quit" {
				break
			}

			// Numeric replies to a clarify prompt map onto its options.
			question = tui.ResolveChoice(question, lastAction)

			tc := domain.TurnContext{ClaimID: claimID}
			resp, err := assistant.HandleTurn(cmd.Context(), state, question, tc)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			state = resp.StateUpdate
			lastAction = resp.Action

			out := tui.FormatAnswer(resp)
			if resp.AnswerMode == domain.ModeSummary || resp.AnswerMode == domain.ModeList {
				if rendered, err := render(resp.Answer); err == nil {
					out = rendered
				}
			}
			fmt.Println(out)
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().Int64("claim", 0, "Anchor the conversation to a claim ID")
}
