package cmd

import (
	"fmt"
	"os"

	"github.com/anu-001/netflix-marketing-analytics/core/config"
	"github.com/anu-001/netflix-marketing-analytics/core/database"
	"github.com/anu-001/netflix-marketing-analytics/core/logger"
	"github.com/anu-001/netflix-marketing-analytics/core/storage"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "netflix-etl",
	Short: "Netflix catalog ETL",
	Long: `Netflix catalog ETL normalizes the denormalized catalog export into
people, titles, and credit relationship tables, resumably and in batches.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting.
		// Console format and debug level give readable CLI output with
		// ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// bootstrap loads configuration, builds the logger, and connects to the
// database. Every pipeline command starts here; a connection failure is
// fatal for all of them.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, l, db, nil
}

// newService assembles the catalog service, attaching the storage client
// only when the pipeline reads its export from object storage.
func newService(cfg *config.Config, l *zap.Logger, db *gorm.DB) (*catalog.Service, error) {
	var client storage.Client
	if cfg.Pipeline.Source == catalog.SourceObjectKind {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
	}
	return catalog.NewService(db, client, cfg.Storage.Bucket, cfg.Pipeline, l), nil
}
