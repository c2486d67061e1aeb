package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/samandr77/microservices/acquiring/internal/api"
	"github.com/samandr77/microservices/acquiring/internal/clients/acquiring"
	"github.com/samandr77/microservices/acquiring/internal/clients/auth"
	"github.com/samandr77/microservices/acquiring/internal/poller"
	"github.com/samandr77/microservices/acquiring/internal/repository"
	"github.com/samandr77/microservices/acquiring/internal/service"
	"github.com/samandr77/microservices/acquiring/pkg/broker"
	"github.com/samandr77/microservices/acquiring/pkg/config"
	"github.com/samandr77/microservices/acquiring/pkg/job"
	"github.com/samandr77/microservices/acquiring/pkg/logger"
	"github.com/samandr77/microservices/acquiring/pkg/postgres"
)

const (
	ReadTimeout     = 3 * time.Second
	WriteTimeout    = 30 * time.Second
	ShutdownTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	panicOnErr("create logger", err)

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	repo := repository.New(pool)

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.PaymentsResolvedTopic)
	defer producer.Close()

	acquiringClient := acquiring.NewClient(cfg.Acquiring)
	authService := auth.NewClient(cfg.AuthServiceURL)

	s := service.New(acquiringClient, repo, producer, service.Config{
		Poll: poller.Config{
			Retries:  cfg.Polling.RetriesCount,
			Interval: cfg.Polling.Interval,
		},
		FinishedPollTTL: cfg.Polling.FinishedPollTTL,
	})
	defer s.Close()

	jobs := job.NewService().
		RegisterJob("evict finished payment status polls", cfg.Polling.EvictInterval, s.EvictFinishedPolls)
	jobs.Start(ctx)

	handler := api.NewHandler(s, cfg.Acquiring.Password)
	mw := api.NewMiddleware(authService, cfg.HTTP.APIKeyEnabled, cfg.HTTP.APIKey)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, ShutdownTimeout)
		defer shutdownCancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}

		cancel()
		jobs.Stop()
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
