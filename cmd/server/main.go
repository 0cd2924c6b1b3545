// Command server runs the vault gate HTTP API. main wires configuration,
// stores, and the router; business logic lives in the internal services.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/jackc/pgx/v5/stdlib"

	codeService "trustvault/internal/accesscode/service"
	codeStore "trustvault/internal/accesscode/store"
	"trustvault/internal/audit"
	gateHandler "trustvault/internal/gate/handler"
	gateService "trustvault/internal/gate/service"
	identityStore "trustvault/internal/identity/store"
	"trustvault/internal/platform/config"
	"trustvault/internal/platform/httpserver"
	"trustvault/internal/platform/logger"
	"trustvault/internal/platform/metrics"
	"trustvault/internal/platform/middleware"
	platformRedis "trustvault/internal/platform/redis"
	vaultStore "trustvault/internal/vault/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Identity store: postgres when a database is configured, memory otherwise.
	var identities gateService.IdentityStore
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		pg := identityStore.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		identities = pg
		log.Info("identity store: postgres")
	} else {
		identities = identityStore.New()
		log.Info("identity store: memory")
	}

	// Access code store: redis when configured, memory otherwise.
	var codes codeService.Store = codeStore.New()
	redisClient, err := platformRedis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		codes = codeStore.NewRedis(redisClient.Client)
		log.Info("access code store: redis")
	}

	// Audit pipeline: a background worker drains the inbox into the sink.
	var sink audit.Store = audit.NewInMemoryStore()
	if len(cfg.Audit.Brokers) > 0 {
		kafka, err := audit.NewKafkaStore(cfg.Audit.Brokers, cfg.Audit.Topic)
		if err != nil {
			return fmt.Errorf("connect audit sink: %w", err)
		}
		defer kafka.Close()
		sink = kafka
		log.Info("audit sink: kafka", "topic", cfg.Audit.Topic)
	}
	inbox := make(chan audit.Event, 256)
	worker := audit.NewWorker(sink, inbox)
	publisher := audit.NewPublisher(audit.NewChannelStore(inbox))

	svc := gateService.New(
		identities,
		codeService.New(codes, cfg.AccessCodeTTL, cfg.AccessCodeLen, log),
		vaultStore.New(),
		publisher,
		m,
		log,
	)

	router := chi.NewRouter()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.RequestTime,
		middleware.Logger(log),
		middleware.Latency(m),
	)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		gateHandler.New(svc, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("audit worker: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting vault gate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
