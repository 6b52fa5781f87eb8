// Command authgate runs the authentication gateway as an HTTP service.
//
// Configuration comes from AUTHGATE_* environment variables; see
// authgate.Env. Required: AUTHGATE_ACCESS_SECRET, AUTHGATE_REFRESH_SECRET,
// and AUTHGATE_DATABASE_DSN. Redis defaults to localhost:6379.
//
// Run:
//
//	AUTHGATE_ACCESS_SECRET=... \
//	AUTHGATE_REFRESH_SECRET=... \
//	AUTHGATE_DATABASE_DSN='postgres://localhost/authgate' \
//	go run ./cmd/authgate
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	authgate "github.com/MrEthical07/authgate"
	"github.com/MrEthical07/authgate/httpapi"
	"github.com/MrEthical07/authgate/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	env, err := authgate.LoadEnv()
	if err != nil {
		return err
	}

	logger, err := newLogger(env.Production)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.Open(ctx, env.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.RunMigrations(ctx); err != nil {
		return err
	}
	logger.Info("database ready")

	redisClient := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
	defer func() { _ = redisClient.Close() }()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}
	logger.Info("redis ready", zap.String("addr", env.RedisAddr))

	gateway, err := authgate.New().
		WithConfig(env.Config()).
		WithRedis(redisClient).
		WithCredentialStore(store).
		WithAuditSink(authgate.NewZapSink(logger)).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}
	defer gateway.Close()

	router := httpapi.NewRouter(gateway, httpapi.Options{
		Logger:     logger,
		Production: env.Production,
		HealthCheck: func(ctx context.Context) error {
			if err := store.Ping(ctx); err != nil {
				return err
			}
			return redisClient.Ping(ctx).Err()
		},
	})

	server := &http.Server{
		Addr:              env.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", env.ListenAddr),
			zap.Bool("production", env.Production),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func newLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
