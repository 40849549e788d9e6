package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/impact-cms/florence"
	"github.com/impact-cms/florence/pkg/adapters/httpapi"
	"github.com/impact-cms/florence/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP API",
	Long: `Starts Florence in server mode, exposing the turn API over HTTP.
Each request carries a session id; conversation state lives in the
configured session store, so replicas stay interchangeable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, true)
		port, _ := cmd.Flags().GetString("port")

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

		assistant, closeData, err := buildAssistant(settings, logger,
			florence.WithRecorder(metrics))
		if err != nil {
			return err
		}
		defer closeData()

		sessions, err := buildSessions(settings, logger)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpapi.NewServer(assistant, sessions, logger).Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting server", "addr", srv.Addr, "db", settings.DatabasePath)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return err

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return err
				}
			}
			logger.Info("server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
