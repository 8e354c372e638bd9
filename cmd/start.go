package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anu-001/netflix-marketing-analytics/core/config"
	"github.com/anu-001/netflix-marketing-analytics/core/database"
	"github.com/anu-001/netflix-marketing-analytics/core/loader"
	"github.com/anu-001/netflix-marketing-analytics/core/logger"
	"github.com/anu-001/netflix-marketing-analytics/core/middleware/auth"
	"github.com/anu-001/netflix-marketing-analytics/core/middleware/rayid"
	"github.com/anu-001/netflix-marketing-analytics/core/storage"
	"github.com/anu-001/netflix-marketing-analytics/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the pipeline status server",
	Long:  `Starts the HTTP server exposing the pipeline's operational API.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage (only when the export comes from a bucket)
		var store storage.Client
		if cfg.Pipeline.Source == catalog.SourceObjectKind {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID first so everything downstream is traceable
		app.Use(rayid.New())

		// Request logging with Zap + RayID
		app.Use(func(c *fiber.Ctx) error {
			start := time.Now()
			err := c.Next()
			logger.WithRayID(logg, c).Info("request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)))
			return err
		})

		app.Use(auth.New(cfg.Server.ApiKey))

		// 6. Register Features
		service := catalog.NewService(db, store, cfg.Storage.Bucket, cfg.Pipeline, logg)
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(service, cfg.Pipeline, logg))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Start server with graceful shutdown
		go func() {
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed", zap.Error(err))
			}
		}()
		logg.Info("Status server listening", zap.String("port", cfg.Server.Port))

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logg.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			logg.Error("Shutdown error", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
