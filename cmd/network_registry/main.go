package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"network_registry/internal/app/service"
	"network_registry/internal/infrastructure/configloader"
	networkdefinition "network_registry/internal/infrastructure/network/definition"
	"network_registry/internal/infrastructure/networkloader"
	"network_registry/internal/infrastructure/restapi"
	"network_registry/internal/pkg/logger"
	"network_registry/internal/pkg/metrics"
	"network_registry/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultConfigPath = "config/config.yml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configPath := utils.GetEnv("CONFIG_PATH", defaultConfigPath)
	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZap(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger.InitZap(zapLogger)

	logger.Info("Network registry is starting...", "config", configPath)
	if cfg.Logging.Level == "debug" {
		logger.Debug("Debug mode enabled")
	}

	appLogger := logger.NewSlogAdapter()
	m := metrics.New(prometheus.DefaultRegisterer)

	provider, err := loadProvider(ctx, cfg, zapLogger, m)
	if err != nil {
		logger.Fatal("Failed to load network definitions", "error", err)
	}

	networkService := service.NewNetworkService(provider, appLogger, m)
	networkHandler := restapi.NewNetworkHandler(networkService, cfg, appLogger)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := restapi.SetupRouter(networkHandler, restapi.RouterOptions{
		Logger:       zapLogger,
		Metrics:      m,
		Gatherer:     prometheus.DefaultGatherer,
		Limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		AllowOrigins: cfg.CORS.AllowOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received. Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped.")
	}
	logger.Info("Network registry stopped.")
}

// loadProvider returns the process-wide bundled registry, or assembles a new
// one when remote or override documents are configured.
func loadProvider(ctx context.Context, cfg *configloader.Config, zapLogger *zap.Logger, m *metrics.Metrics) (*networkdefinition.NetworkDefinitionProvider, error) {
	if cfg.Networks.RemoteURL == "" && cfg.Networks.OverrideFile == "" && cfg.Networks.OverrideDir == "" {
		return networkdefinition.Bundled()
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.RemoteTimeout())
	defer cancel()
	loader := networkloader.NewLoader(networkloader.Options{
		Bundled:       networkdefinition.BundledDocument,
		RemoteURL:     cfg.Networks.RemoteURL,
		RemoteTimeout: cfg.RemoteTimeout(),
		OverrideFile:  cfg.Networks.OverrideFile,
		OverrideDir:   cfg.Networks.OverrideDir,
	}, zapLogger, m)
	table, err := loader.Load(loadCtx)
	if err != nil {
		return nil, err
	}
	return networkdefinition.NewNetworkDefinitionProvider(logger.NewSlogAdapter(), table), nil
}
