package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	audithandler "phonereg/internal/audit/handler"
	"phonereg/internal/phone"
	phonecache "phonereg/internal/phone/cache"
	phonehandler "phonereg/internal/phone/handler"
	phonemetrics "phonereg/internal/phone/metrics"
	"phonereg/internal/platform/config"
	"phonereg/internal/platform/httpserver"
	"phonereg/internal/platform/logger"
	"phonereg/internal/platform/metrics"
	"phonereg/internal/platform/postgres"
	"phonereg/internal/platform/redis"
	reghandler "phonereg/internal/registration/handler"
	regmetrics "phonereg/internal/registration/metrics"
	regservice "phonereg/internal/registration/service"
	regstore "phonereg/internal/registration/store"
	httptransport "phonereg/internal/transport/http"
	audit "phonereg/pkg/platform/audit"
	"phonereg/pkg/platform/audit/publisher"
	auditmemory "phonereg/pkg/platform/audit/store/memory"
	auditpostgres "phonereg/pkg/platform/audit/store/postgres"
	"phonereg/pkg/platform/tx"
)

// main wires dependencies, precomputes the valid-number count and serves
// until SIGINT or SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("failed to start API", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var checks []httptransport.HealthCheck

	// storage: Postgres when configured, otherwise in-memory
	var (
		store      regservice.Store
		auditStore audit.Store
		txRunner   regservice.TxRunner = tx.NoopRunner{}
	)
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer closeDB(db, log)

		if err := postgres.Migrate(ctx, db, log); err != nil {
			return err
		}
		store = regstore.NewPostgres(db)
		auditStore = auditpostgres.New(db)
		txRunner = tx.NewPostgresRunner(db)
		checks = append(checks, httptransport.HealthCheck{Name: "postgres", Check: db.PingContext})
		log.Info("database connected")
	} else {
		store = regstore.NewInMemory()
		auditStore = auditmemory.NewInMemoryStore()
		log.Warn("DATABASE_URL not set, registrations are kept in memory")
	}

	phoneOpts := []phone.Option{
		phone.WithLogger(log),
		phone.WithMetrics(phonemetrics.New()),
		phone.WithWorkers(cfg.Server.CountWorkers),
	}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis client", "error", err)
			}
		}()
		phoneOpts = append(phoneOpts, phone.WithCountCache(phonecache.NewRedis(redisClient, cfg.Redis.CountTTL)))
		checks = append(checks, httptransport.HealthCheck{Name: "redis", Check: redisClient.Health})
		log.Info("redis connected")
	}
	phones := phone.NewService(phoneOpts...)
	if err := phones.Warm(ctx); err != nil {
		return fmt.Errorf("precompute valid count: %w", err)
	}

	// synchronous so the accepted event shares the registration transaction
	auditPublisher := publisher.NewPublisher(auditStore, publisher.WithLogger(log))
	// denials are best effort and leave the request path through a buffer
	denialPublisher := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.Audit.DenialBuffer),
		publisher.WithLogger(log),
	)
	defer denialPublisher.Close()

	registrations, err := regservice.New(store, phones,
		regservice.WithLogger(log),
		regservice.WithMetrics(regmetrics.New()),
		regservice.WithAuditPublisher(auditPublisher),
		regservice.WithDenialPublisher(denialPublisher),
		regservice.WithTxRunner(txRunner),
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Logger:  log,
		Metrics: metrics.New(),
		Checks:  checks,
		API: []httptransport.RouteRegistrar{
			phonehandler.New(phones, registrations, log),
			reghandler.New(registrations, log),
		},
		Internal: []httptransport.RouteRegistrar{
			audithandler.New(auditPublisher, log),
		},
	})
	srv := httpserver.New(cfg.Server, router)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("API running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func closeDB(db *sql.DB, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("failed to close database", "error", err)
	}
}
