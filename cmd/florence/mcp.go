package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/impact-cms/florence"
	mcpadapter "github.com/impact-cms/florence/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Florence as an MCP server so AI agents can ask claim and
billing questions as a tool.

Supported transports:
- stdio (default): standard input/output, for local process integration
- sse: Server-Sent Events over HTTP, for remote agents`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		// Stdout carries JSON-RPC framing; all logging goes to stderr.
		logger := newLogger(cmd, false)

		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		assistant, closeData, err := buildAssistant(settings, logger)
		if err != nil {
			return err
		}
		defer closeData()

		sessions, err := buildSessions(settings, logger)
		if err != nil {
			return err
		}

		mcpadapter.Version = florence.Version
		srv := mcpadapter.NewServer(assistant, sessions, logger)

		switch transport {
		case "stdio":
			logger.Info("starting MCP server", "transport", "stdio")
			return srv.ServeStdio()
		case "sse":
			logger.Info("starting MCP server", "transport", "sse", "port", port)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped")
			return nil
		default:
			return errors.New("unknown transport " + transport + " (supported: stdio, sse)")
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (SSE only)")
}
