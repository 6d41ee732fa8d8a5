// Package main provides the CLI entry point for tablenorm.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ukaji3/tablenorm-go/internal/config"
	"github.com/ukaji3/tablenorm-go/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tablenorm",
		Short: "Normalize spreadsheets and delimited text into clean tables",
		Long: `tablenorm reads xlsx workbooks and comma-delimited text of any shape
and outputs a rectangular JSON table: a header row and data rows with
surrounding blank rows and trailing blank columns removed.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newExtractCmd(), newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads .env (if present) and the environment.
func loadConfig() (*config.Config, *slog.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}
