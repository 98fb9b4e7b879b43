package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tuberank/tuberank/internal/adconfig"
	"github.com/tuberank/tuberank/internal/config"
	"github.com/tuberank/tuberank/internal/core/store"
	errwrap "github.com/tuberank/tuberank/internal/errors"
	"github.com/tuberank/tuberank/internal/genai"
	"github.com/tuberank/tuberank/internal/genai/driver/gemini"
	"github.com/tuberank/tuberank/internal/genai/prompt"
	"github.com/tuberank/tuberank/internal/observability"
	"github.com/tuberank/tuberank/internal/server"
	"github.com/tuberank/tuberank/internal/server/handlers"
	"github.com/tuberank/tuberank/internal/studio"
)

var (
	serverPort int
	serverHost string
)

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server with graceful shutdown support.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload (placeholder - restart recommended)

The server will cleanly shut down the HTTP server and flush logs on shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errwrap.Wrap(cmd.Context(), "CONFIG_INVALID", err, "config load failed")
		}

		// Initialize server logger
		observability.InitServerLogger(appName, cfg.Logging.Level)

		metricsPort := cfg.Metrics.Port
		if metricsPort == 0 {
			metricsPort = 9090
		}

		// Initialize metrics
		if err := observability.InitMetrics(appName, metricsPort); err != nil {
			observability.ServerLogger.Error("Failed to initialize metrics",
				zap.Error(err))
			return errwrap.Wrap(cmd.Context(), "INTERNAL_ERROR", err, "metrics initialization failed")
		}

		observability.ServerLogger.Info("Initializing server",
			zap.String("service", appName),
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.Int("metrics_port", metricsPort))

		handlers.SetVersionInfo(versionInfo.Version, versionInfo.Commit, versionInfo.BuildDate)

		// Open the settings store and run migrations
		db, err := store.Open(cmd.Context(), cfg.Store)
		if err != nil {
			return errwrap.Wrap(cmd.Context(), "DATABASE_ERROR", err, "store open failed")
		}
		if err := db.Migrate(cmd.Context()); err != nil {
			_ = db.Close()
			return errwrap.Wrap(cmd.Context(), "DATABASE_ERROR", err, "store migration failed")
		}

		// Ad configuration with persistent settings and head injection
		injector := &adconfig.HeadInjector{}
		var adsRepo adconfig.Repository
		if cfg.Ads.Enabled {
			adsRepo = store.NewAdSettingsRepository(db)
		}
		adsService := adconfig.NewService(adsRepo, injector, observability.ServerLogger)
		adsService.LoadInitial()

		// Generation service. A missing API key is tolerated at startup;
		// the driver rejects calls until one is configured.
		registry, err := prompt.DefaultRegistry(cfg.GenAI.PromptsDir)
		if err != nil {
			_ = db.Close()
			return errwrap.Wrap(cmd.Context(), "CONFIG_INVALID", err, "prompt registry load failed")
		}
		if cfg.GenAI.APIKey == "" {
			observability.ServerLogger.Warn("Gemini API key not configured; generation endpoints will fail until genai.api_key or GEMINI_API_KEY is set")
		}
		genService := &genai.Service{
			Driver:  gemini.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.APIKey),
			Model:   cfg.GenAI.Model,
			Prompts: registry,
			Timeout: cfg.GenAI.Timeout,
		}

		// Initialize health manager
		hm := handlers.NewHealthManager(versionInfo.Version)
		hm.RegisterChecker("store", db)
		hm.RegisterChecker("telemetry", telemetryHealthChecker{})

		// Create server
		srv := server.New(cfg.Server.Host, cfg.Server.Port, server.Deps{
			GenAI:    genService,
			Session:  studio.NewSession(),
			Ads:      adsService,
			Injector: injector,
			Health:   hm,
		})

		// Get shutdown timeout from config
		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		// Register graceful shutdown handlers (LIFO order - last registered, first executed)
		// Handler 1: Flush logger (executed last)
		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Flushing logger...")
			if err := observability.ServerLogger.Sync(); err != nil {
				// Sync errors are often benign (stdout/stderr already closed)
				observability.ServerLogger.Warn("Logger sync returned error (may be benign)",
					zap.Error(err))
			}
			return nil
		})

		// Handler 2: Close the settings store
		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Closing settings store...")
			if err := db.Close(); err != nil {
				observability.ServerLogger.Warn("Store close returned error", zap.Error(err))
			}
			return nil
		})

		// Handler 3: Shutdown HTTP server (executed first)
		signals.OnShutdown(func(ctx context.Context) error {
			observability.ServerLogger.Info("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errwrap.Wrap(ctx, "INTERNAL_ERROR", err, "server shutdown failed")
			}

			observability.ServerLogger.Info("HTTP server stopped gracefully")
			return nil
		})

		// Register config reload handler (SIGHUP)
		signals.OnReload(func(ctx context.Context) error {
			observability.ServerLogger.Info("Received SIGHUP: attempting config reload")

			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); ok {
					observability.ServerLogger.Info("No config file found - using defaults and environment variables")
					return nil
				}
				observability.ServerLogger.Error("Failed to reload config file",
					zap.String("file", viper.ConfigFileUsed()),
					zap.Error(err))
				return errwrap.Wrap(ctx, "CONFIG_INVALID", err, "config reload failed")
			}

			observability.ServerLogger.Info("Configuration reloaded successfully",
				zap.String("file", viper.ConfigFileUsed()))

			return nil
		})

		// Enable double-tap force quit (Ctrl+C within 2 seconds)
		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			observability.ServerLogger.Warn("Failed to enable double-tap force quit",
				zap.Error(err))
		}

		// Start server in background goroutine
		errChan := make(chan error, 1)
		go func() {
			observability.ServerLogger.Info("Starting HTTP server...",
				zap.String("host", cfg.Server.Host),
				zap.Int("port", cfg.Server.Port))
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		// Start signal listener in background
		go func() {
			if err := signals.Listen(cmd.Context()); err != nil {
				observability.ServerLogger.Error("Signal handler error", zap.Error(err))
				errChan <- err
			}
		}()

		// Wait for error or shutdown completion
		if err := <-errChan; err != nil {
			return errwrap.Wrap(cmd.Context(), "INTERNAL_ERROR", err, "server error")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "localhost", "server host")
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "server port")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}
