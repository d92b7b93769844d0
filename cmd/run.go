package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/bookquiz/internal/app"
	"github.com/abhisek/bookquiz/internal/client"
	"github.com/abhisek/bookquiz/internal/logging"
)

// runApp loads config, opens the log file, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, flagOverride{flag: "base-url", key: "server.base_url"})
	if err != nil {
		return err
	}

	logger, closer, err := logging.NewFile(
		logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format},
		logging.FileConfig{
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	c, err := client.New(client.Config{
		BaseURL:       cfg.Server.BaseURL,
		QuestionsPath: cfg.Server.QuestionsPath,
		RecommendPath: cfg.Server.RecommendPath,
		Timeout:       cfg.Server.Timeout,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	logger.Info("starting quiz",
		slog.String("base_url", cfg.Server.BaseURL),
		slog.String("version", version),
	)
	return app.Run(app.Options{Service: c, Logger: logger})
}
