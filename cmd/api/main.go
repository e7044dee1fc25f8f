package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/auth"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/config"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/db"
	httpx "github.com/aryanbhojgaria/oc-2-day-octo/internal/http"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/http/handlers"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/notifications"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/queue/worker"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/redisclient"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/repo/memory"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/repo/postgres"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/seed"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTELEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: "oc-2-day-api",
			Env:         cfg.Env,
			Endpoint:    cfg.OTELEndpoint,
			SampleRatio: cfg.OTELSampleRatio,
		})
		if err != nil {
			log.Error("otel init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	prom := observability.NewProm(prometheus.DefaultRegisterer)
	checks := map[string]handlers.Check{}

	rdb, err := redisclient.Open(ctx, redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Error("redis connect failed", "err", err)
		os.Exit(1)
	}

	var denylist auth.Denylist = auth.NewMemoryDenylist()
	if rdb != nil {
		defer rdb.Close()
		denylist = auth.NewRedisDenylist(rdb)
		checks["redis"] = redisclient.Check(rdb)
	} else {
		log.Warn("REDIS_ADDR not set, token denylist is per process")
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL())
	verifier := auth.NewVerifier(tokens, denylist)

	var (
		stores httpx.Stores
		target seed.Target
	)

	switch cfg.Store {
	case config.StoreMemory:
		mem := memory.New()
		stores = httpx.MemoryStores(mem)
		target = mem

		// no separate worker process can see this store
		w := worker.New(worker.Config{
			PollInterval: cfg.WorkerPollInterval,
			WorkerID:     "api-inprocess",
			Concurrency:  1,
			LockTTL:      cfg.WorkerLockTTL,
		}, mem.Jobs(), jobs.NewProcessor(mem.Notifications(), mem.Accounts(), mem.Students()).
			WithPusher(notifications.NewProtectedPusher(notifications.NewLogPusher(), notifications.ProtectedPusherConfig{})), prom)
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Error("in-process worker stopped", "err", err)
			}
		}()

	default:
		pool, err := db.NewPool(ctx, db.PoolOptions{URL: cfg.DBURL, MaxConns: int32(cfg.DBMaxConns)})
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			log.Error("migrations failed", "err", err)
			os.Exit(1)
		}

		stores = httpx.PostgresStores(pool, prom)
		target = postgres.NewSeeder(pool)
	}

	if cfg.SeedDemo || cfg.Store == config.StoreMemory {
		if err := seed.Run(ctx, target, seed.Options{}); err != nil {
			log.Error("demo seed failed", "err", err)
			os.Exit(1)
		}
		log.Info("demo data loaded")
	}

	if accounts, ok := stores.Accounts.(seed.AccountStore); ok {
		if err := seed.EnsureAdmin(ctx, accounts, cfg.AdminEmail, cfg.AdminPassword, seed.Options{}); err != nil {
			log.Error("admin bootstrap failed", "err", err)
			os.Exit(1)
		}
	}

	router := httpx.NewRouter(httpx.Deps{
		Config:   cfg,
		Stores:   stores,
		Tokens:   tokens,
		Verifier: verifier,
		Prom:     prom,
		Gatherer: prometheus.DefaultGatherer,
		Checks:   checks,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("server shutting down")

	shutdownCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		return
	}
	log.Info("shutdown complete")
}
