package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scenttwin/internal/app"
	"github.com/kailas-cloud/scenttwin/internal/config"
	logpkg "github.com/kailas-cloud/scenttwin/internal/logger"
	"github.com/kailas-cloud/scenttwin/internal/metrics"
	chiTransport "github.com/kailas-cloud/scenttwin/internal/transport/chi"
	mcpTransport "github.com/kailas-cloud/scenttwin/internal/transport/mcp"
	"github.com/kailas-cloud/scenttwin/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting scenttwin API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("provider", cfg.Provider.Driver),
		zap.String("model", cfg.Provider.Model),
		zap.Bool("auth_enabled", len(cfg.Auth.APIKeys) > 0),
	)

	// Register HTTP metrics explicitly (no init()); app.New registers generation metrics.
	metrics.RegisterHTTPMetrics()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to wire services", zap.Error(err))
	}

	server := chiTransport.NewServer(a.Search, a.Health, logger)

	routerCfg := chiTransport.RouterConfig{APIKeys: cfg.Auth.APIKeys}
	if cfg.MCP.HTTPEnabled {
		routerCfg.MCP = mcpTransport.NewServer(a.Search, logger).Handler()
		logger.Info("MCP endpoint enabled", zap.String("path", chiTransport.MCPPath))
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chiTransport.NewRouter(server, routerCfg),
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
