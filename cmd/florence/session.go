package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/impact-cms/florence/pkg/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted conversation sessions",
	Long:  `List, inspect, and remove conversation sessions from the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := getSessions(cmd)
		if err != nil {
			return err
		}
		ids, err := sessions.List(cmd.Context())
		if err != nil {
			return err
		}

		if len(ids) == 0 {
			fmt.Println("No active sessions found.")
			return nil
		}
		fmt.Println("Active sessions:")
		for _, id := range ids {
			fmt.Println("- " + id)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := getSessions(cmd)
		if err != nil {
			return err
		}
		state, err := sessions.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load session %q: %w", args[0], err)
		}

		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := getSessions(cmd)
		if err != nil {
			return err
		}
		hasError := false
		for _, id := range args {
			if err := sessions.Delete(cmd.Context(), id); err != nil {
				fmt.Fprintf(os.Stderr, "error removing %q: %v\n", id, err)
				hasError = true
			} else {
				fmt.Printf("Removed session %q\n", id)
			}
		}
		if hasError {
			return errors.New("some sessions could not be removed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

// getSessions opens the configured session store (Redis when set,
// local files otherwise).
func getSessions(cmd *cobra.Command) (*session.Manager, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	return buildSessions(settings, newLogger(cmd, false))
}
