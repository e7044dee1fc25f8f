package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/config"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/db"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/jobs"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/notifications"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/observability"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/queue/worker"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.Store != config.StorePostgres {
		log.Error("the worker needs STORE=postgres; the memory store runs its worker inside the api")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTELEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: "oc-2-day-worker",
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

	pool, err := db.NewPool(ctx, db.PoolOptions{URL: cfg.DBURL, MaxConns: int32(cfg.WorkerConcurrency + 2)})
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	processor := jobs.NewProcessor(
		postgres.NewNotificationsRepo(pool, prom),
		postgres.NewAccountsRepo(pool, prom),
		postgres.NewStudentsRepo(pool, prom),
	).WithPusher(notifications.NewProtectedPusher(notifications.NewLogPusher(), notifications.ProtectedPusherConfig{}))

	host, _ := os.Hostname()
	w := worker.New(worker.Config{
		PollInterval:  cfg.WorkerPollInterval,
		WorkerID:      host + "-" + strconv.Itoa(os.Getpid()),
		Concurrency:   cfg.WorkerConcurrency,
		ShutdownGrace: 10 * time.Second,
		LockTTL:       cfg.WorkerLockTTL,
	}, postgres.NewJobsRepo(pool, prom), processor, prom)

	healthSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WorkerHealthPort),
		Handler:           w.HealthHandler(pool),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("worker health server failed", "err", err)
		}
	}()

	log.Info("worker started", "concurrency", cfg.WorkerConcurrency, "health_port", cfg.WorkerHealthPort)

	if err := w.Run(ctx); err != nil {
		log.Error("worker stopped with error", "err", err)
	}

	shutdownCtx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()
	_ = healthSrv.Shutdown(shutdownCtx)

	log.Info("worker shutdown complete")
}
