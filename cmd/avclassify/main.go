// Package main is the entry point for the classification service.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vyrodovalexey/avclassify/internal/config"
	"github.com/vyrodovalexey/avclassify/internal/health"
	"github.com/vyrodovalexey/avclassify/internal/observability"
	"github.com/vyrodovalexey/avclassify/internal/ratelimit"
	"github.com/vyrodovalexey/avclassify/internal/server"
	"github.com/vyrodovalexey/avclassify/internal/server/middleware"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 30 * time.Second

// cliFlags holds command line flags.
type cliFlags struct {
	configPath  string
	logLevel    string
	logFormat   string
	showVersion bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		printVersion()
		return
	}

	logger := initLogger(flags)
	defer func() { _ = logger.Sync() }()

	cfg := loadAndValidateConfig(flags.configPath, logger)
	app := initApplication(cfg, logger)

	runService(app, logger)
}

// parseFlags parses command line flags.
func parseFlags() cliFlags {
	configPath := flag.String("config", getEnvOrDefault("CLASSIFY_CONFIG_PATH", ""),
		"Path to configuration file (optional)")
	logLevel := flag.String("log-level", getEnvOrDefault("CLASSIFY_LOG_LEVEL", "info"),
		"Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", getEnvOrDefault("CLASSIFY_LOG_FORMAT", "json"),
		"Log format (json, console)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	return cliFlags{
		configPath:  *configPath,
		logLevel:    *logLevel,
		logFormat:   *logFormat,
		showVersion: *showVersion,
	}
}

// printVersion prints version information and exits.
func printVersion() {
	fmt.Printf("avclassify version %s\n", version)
	fmt.Printf("  Build time: %s\n", buildTime)
	fmt.Printf("  Git commit: %s\n", gitCommit)
}

// initLogger initializes the logger.
func initLogger(flags cliFlags) observability.Logger {
	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  flags.logLevel,
		Format: flags.logFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	observability.SetGlobalLogger(logger)
	return logger
}

// loadAndValidateConfig loads and validates the configuration.
func loadAndValidateConfig(configPath string, logger observability.Logger) *config.Config {
	logger.Info("starting avclassify",
		observability.String("version", version),
		observability.String("config", configPath),
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", observability.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", observability.Error(err))
	}

	logger.Info("configuration loaded",
		observability.Int("port", cfg.Server.Port),
		observability.Int("maxItems", cfg.Server.MaxItems),
		observability.Bool("rateLimit", cfg.RateLimit.Enabled),
		observability.Bool("metrics", cfg.Metrics.Enabled),
	)

	return cfg
}

// application holds all application components.
type application struct {
	server        *server.Server
	limiter       *ratelimit.TokenBucketLimiter
	healthChecker *health.Checker
	metrics       *observability.Metrics
	config        *config.Config
}

// initApplication initializes all application components.
func initApplication(cfg *config.Config, logger observability.Logger) *application {
	metrics := observability.NewMetrics("avclassify")
	metrics.SetBuildInfo(version, gitCommit, buildTime)

	healthChecker := health.NewChecker(version)

	srv := server.New(&server.Config{
		Address:            cfg.Server.Address,
		Port:               cfg.Server.Port,
		ReadTimeout:        cfg.Server.ReadTimeout.Duration(),
		WriteTimeout:       cfg.Server.WriteTimeout.Duration(),
		IdleTimeout:        cfg.Server.IdleTimeout.Duration(),
		MaxHeaderBytes:     1 << 20,
		MaxRequestBodySize: cfg.Server.MaxRequestBodySize,
	}, logger)

	app := &application{
		server:        srv,
		healthChecker: healthChecker,
		metrics:       metrics,
		config:        cfg,
	}

	srv.Use(
		middleware.Recovery(logger),
		middleware.Logging(logger),
		metricsMiddleware(metrics),
	)

	if cfg.RateLimit.Enabled {
		app.limiter = ratelimit.NewTokenBucketLimiter(
			float64(cfg.RateLimit.RequestsPerSecond),
			cfg.RateLimit.Burst,
			ratelimit.WithLogger(logger),
		)
		srv.Use(middleware.RateLimitWithConfig(middleware.RateLimitConfig{
			Limiter:   app.limiter,
			Logger:    logger,
			SkipPaths: []string{"/health", "/ready", "/live"},
			OnLimit: func(c *gin.Context) {
				metrics.RecordRateLimitHit(c.Request.URL.Path)
			},
		}))
	}

	if cfg.Security.Enabled {
		secCfg := middleware.DefaultSecurityConfig()
		if cfg.Security.HSTSMaxAge > 0 {
			secCfg.HSTSMaxAge = cfg.Security.HSTSMaxAge
		}
		if cfg.Security.ContentSecurityPolicy != "" {
			secCfg.ContentSecurityPolicy = cfg.Security.ContentSecurityPolicy
		}
		srv.Use(middleware.SecurityHeadersWithConfig(secCfg))
	}

	handler := server.NewClassifyHandler(cfg.Identity,
		server.WithHandlerLogger(logger),
		server.WithHandlerMetrics(metrics),
		server.WithMaxItems(cfg.Server.MaxItems),
	)

	srv.RegisterRoutes(handler, healthChecker)

	return app
}

// metricsMiddleware records request metrics for every completed request.
func metricsMiddleware(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.Request.ContentLength,
			int64(c.Writer.Size()),
		)
	}
}

// runService runs the HTTP server and handles shutdown.
func runService(app *application, logger observability.Logger) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Start(context.Background())
	}()

	startMetricsServerIfEnabled(app, logger)

	waitForShutdown(app, errCh, logger)
}

// startMetricsServerIfEnabled starts the metrics server if enabled.
func startMetricsServerIfEnabled(app *application, logger observability.Logger) {
	if !app.config.Metrics.Enabled {
		return
	}

	go startMetricsServer(
		app.config.Metrics.Port,
		app.config.Metrics.Path,
		app.metrics,
		app.healthChecker,
		logger,
	)
}

// startMetricsServer starts the metrics HTTP server.
func startMetricsServer(
	port int,
	path string,
	metrics *observability.Metrics,
	healthChecker *health.Checker,
	logger observability.Logger,
) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())
	mux.HandleFunc("/health", healthChecker.HealthHandler())
	mux.HandleFunc("/ready", healthChecker.ReadinessHandler())
	mux.HandleFunc("/live", healthChecker.LivenessHandler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("starting metrics server",
		observability.String("address", addr),
		observability.String("metrics_path", path),
	)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server error", observability.Error(err))
	}
}

// waitForShutdown waits for a shutdown signal or server error and performs
// graceful shutdown.
func waitForShutdown(app *application, errCh <-chan error, logger observability.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", observability.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server failed", observability.Error(err))
		}
		return
	}

	// Flip readiness first so load balancers stop sending traffic.
	app.healthChecker.SetDraining(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.server.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop server gracefully", observability.Error(err))
	}

	if app.limiter != nil {
		_ = app.limiter.Close()
	}

	logger.Info("avclassify stopped")
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
