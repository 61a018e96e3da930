package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ew616/project-dailyupdate/internal/config"
	"github.com/ew616/project-dailyupdate/internal/storage"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "dailyupdate",
	Short: "Personal daily news briefing",
	Long: `dailyupdate collects articles from RSS feeds and subreddits, drops
duplicate coverage, groups the remainder by topic, and emails one
daily briefing.

Configuration comes from the environment; a .env file in the working
directory is read when present. Run 'dailyupdate init' to write starter
copies of .env and sources.yaml.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env before anything reads the environment. A missing
		// file is fine; deployments set real environment variables.
		_ = godotenv.Load()

		level := logLevel
		if level == "" {
			level = os.Getenv("LOG_LEVEL")
		}
		parsed, err := config.ParseLevel(level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v, using INFO\n", err)
		}
		slog.SetLogLoggerLevel(parsed)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: DEBUG, INFO, WARNING or ERROR (default from LOG_LEVEL)")
}

// loadConfig reads configuration from the environment and exits on bad
// values, so commands can assume a usable config.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg
}

// openStore opens the SQLite store at the configured path, exiting on
// failure. Callers own the Close.
func openStore(ctx context.Context, cfg *config.Config) storage.Store {
	store, err := storage.NewStore(ctx, &storage.Config{Path: cfg.DatabasePath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open database: %v\n", err)
		os.Exit(1)
	}
	return store
}
