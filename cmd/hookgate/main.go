package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"hookgate/internal/bootstrap"
	"hookgate/internal/config"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := zapr.NewLogger(zapLogger)

	rt := bootstrap.NewRuntime(ctx, cfg, logger)
	defer rt.Cleanup()

	summary := cfg.Summary()
	logger.Info("startup config",
		"repository_mode", summary.RepositoryMode,
		"providers", summary.Providers,
		"secrets_configured", summary.SecretsConfigured,
		"rate_limit", summary.RateLimit,
		"tls_enabled", summary.TLSEnabled,
	)
	logger.Info("hookgate listening", "addr", cfg.Addr)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           rt.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	var serveErr error
	if cfg.TLS.Enabled {
		serveErr = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	} else {
		serveErr = server.ListenAndServe()
	}
	if serveErr != nil {
		logger.Error(serveErr, "http server failed")
		log.Fatal(serveErr)
	}
}
