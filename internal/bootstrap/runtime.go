package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"hookgate/internal/api"
	"hookgate/internal/config"
	"hookgate/internal/ingest"
	"hookgate/internal/migrate"
	"hookgate/internal/observability"
	"hookgate/internal/processor"
	"hookgate/internal/providers/payments"
	"hookgate/internal/providers/plugin"
	"hookgate/internal/providers/pos"
	"hookgate/internal/providers/registrar"
	"hookgate/internal/providers/storefront"
	"hookgate/internal/store"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	_ "modernc.org/sqlite"
)

type Runtime struct {
	Handler http.Handler
	Cleanup func()
}

func NewRuntime(ctx context.Context, cfg config.Config, logger logr.Logger) *Runtime {
	repo, cleanup := buildRepository(ctx, cfg, logger)

	server := api.NewServer(api.ServerOptions{
		Registry:  buildRegistry(cfg),
		Processor: processor.NewRecorder(repo, logger.WithName("recorder")),
		Logger:    logger.WithName("api"),
		Rate: api.RateLimitPolicy{
			Enabled:         cfg.RateLimit.Enabled,
			IngestPerMinute: cfg.RateLimit.IngestPerMinute,
		},
		Metrics: observability.NewWebhookMetrics(),
	})

	metrics := observability.NewHTTPMetrics()
	rootMux := http.NewServeMux()
	rootMux.Handle("/metrics", promhttp.Handler())
	rootMux.Handle("/", metrics.Wrap(server.Routes()))

	return &Runtime{
		Handler: rootMux,
		Cleanup: cleanup,
	}
}

func buildRegistry(cfg config.Config) *ingest.Registry {
	reg := ingest.NewRegistry()
	reg.Register(payments.NewAdapter(cfg.Providers.Payments.Secret, cfg.Providers.Payments.Tolerance))
	reg.Register(registrar.NewAdapter(cfg.Providers.Registrar.Secret))
	reg.Register(storefront.NewAdapter(cfg.Providers.Storefront.Secret))
	reg.Register(pos.NewAdapter(cfg.Providers.POS.Secret))
	reg.Register(plugin.NewAdapter(cfg.Providers.Plugin.Secret))
	return reg
}

func buildRepository(ctx context.Context, cfg config.Config, logger logr.Logger) (store.Repository, func()) {
	if cfg.DBDriver == "" || cfg.DBDSN == "" {
		logger.Info("running with in-memory delivery log")
		return store.NewMemoryRepository(), func() {}
	}

	db, err := sql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error(err, "db open failed, falling back to in-memory delivery log")
		return store.NewMemoryRepository(), func() {}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error(err, "db ping failed, falling back to in-memory delivery log")
		_ = db.Close()
		return store.NewMemoryRepository(), func() {}
	}

	if cfg.DBMigrate {
		runner := migrate.NewRunner(os.DirFS("."))
		if err := runner.Apply(ctx, db, cfg.DBDialect); err != nil {
			logger.Error(err, "migration apply failed, falling back to in-memory delivery log")
			_ = db.Close()
			return store.NewMemoryRepository(), func() {}
		}
	}

	repo, err := store.NewSQLRepository(db, cfg.DBDialect)
	if err != nil {
		logger.Error(err, "sql delivery log init failed, falling back to in-memory delivery log")
		_ = db.Close()
		return store.NewMemoryRepository(), func() {}
	}
	logger.Info("running with SQL delivery log", "dialect", cfg.DBDialect)
	return repo, func() { _ = db.Close() }
}
