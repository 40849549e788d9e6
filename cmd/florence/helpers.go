package main

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/impact-cms/florence"
	"github.com/impact-cms/florence/internal/adapters/sqlite"
	"github.com/impact-cms/florence/internal/logging"
	"github.com/impact-cms/florence/pkg/adapters/file"
	redisadapter "github.com/impact-cms/florence/pkg/adapters/redis"
	"github.com/impact-cms/florence/pkg/config"
	"github.com/impact-cms/florence/pkg/persistence/middleware"
	"github.com/impact-cms/florence/pkg/ports"
	"github.com/impact-cms/florence/pkg/session"
)

func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(path)
	if err != nil {
		return settings, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		settings.DatabasePath = db
	}
	return settings, nil
}

func newLogger(cmd *cobra.Command, json bool) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	if json {
		return logging.NewJSON(logging.ParseLevel(level))
	}
	return logging.New(logging.ParseLevel(level))
}

// buildAssistant opens the billing database and wires the assistant.
// The returned closer owns the database handle.
func buildAssistant(settings config.Settings, logger *slog.Logger, opts ...florence.Option) (*florence.Assistant, func() error, error) {
	data, err := sqlite.Open(settings.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open billing database %s: %w", settings.DatabasePath, err)
	}

	opts = append([]florence.Option{
		florence.WithLogger(logger),
		florence.WithSettings(settings),
	}, opts...)
	assistant, err := florence.New(data, opts...)
	if err != nil {
		data.Close()
		return nil, nil, err
	}
	return assistant, data.Close, nil
}

// buildSessions picks the session store from settings: Redis when an
// address is configured (with a distributed lock so replicas serialize
// turns per session), local JSON files otherwise. The PII scrubber and
// the at-rest sealing wrap whichever store is chosen.
func buildSessions(settings config.Settings, logger *slog.Logger) (*session.Manager, error) {
	var store ports.StateStore
	var managerOpts []session.Option

	if settings.RedisAddress != "" {
		redisStore := redisadapter.New(settings.RedisAddress, settings.RedisPassword, settings.RedisDB)
		store = redisStore
		managerOpts = append(managerOpts, session.WithLocker(redisStore.Locker()))
	} else {
		store = file.New(settings.SessionDir)
	}

	if settings.SessionKey != "" {
		key, err := base64.StdEncoding.DecodeString(settings.SessionKey)
		if err != nil {
			return nil, fmt.Errorf("decode session key: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("session key must decode to 32 bytes, got %d", len(key))
		}
		store = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(store)
	}
	if len(settings.PIIPatterns) > 0 {
		store = middleware.NewPIIMiddleware(settings.PIIPatterns)(store)
	}

	managerOpts = append(managerOpts, session.WithLogger(logger))
	return session.NewManager(store, managerOpts...), nil
}
