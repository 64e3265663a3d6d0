// @title        Credit Card Application API
// @version      1.0
// @description  Signup, login, card applications and profile updates for the credit card demo.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cardwise/credit-card-api/internal/api"
	"github.com/cardwise/credit-card-api/internal/api/handler"
	"github.com/cardwise/credit-card-api/internal/core/ports"
	"github.com/cardwise/credit-card-api/internal/core/service"
	"github.com/cardwise/credit-card-api/internal/infrastructure/config"
	mongostore "github.com/cardwise/credit-card-api/internal/infrastructure/db/mongo"
	redisstore "github.com/cardwise/credit-card-api/internal/infrastructure/db/redis"
	"github.com/cardwise/credit-card-api/internal/infrastructure/security"
	"github.com/cardwise/credit-card-api/pkg/logger"
)

const serviceName = "credit-card-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: serviceName})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- MongoDB ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	userRepo := mongostore.NewUserRepository(db)
	applicationRepo := mongostore.NewApplicationRepository(db)
	if err := mongostore.EnsureIndexes(ctx, userRepo, applicationRepo); err != nil {
		return err
	}

	readiness := []handler.DependencyCheck{{
		Name: "mongodb",
		Ping: func(ctx context.Context) error { return mongostore.Ping(ctx, db) },
	}}

	// --- Redis (optional) ---
	var idempotency ports.IdempotencyStore
	if cfg.RedisEnabled() {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}()
		idempotency = redisstore.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		readiness = append(readiness, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency store enabled")
	} else {
		log.Info().Msg("REDIS_ADDR not set, Idempotency-Key support disabled")
	}

	// --- Services ---
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	e := api.NewRouter(api.RouterConfig{
		AuthService:          service.NewAuthService(userRepo, hasher, log),
		ApplicationService:   service.NewApplicationService(applicationRepo, idempotency, log),
		ProfileService:       service.NewProfileService(userRepo, log),
		Readiness:            readiness,
		Logger:               log,
		ExposeInternalErrors: cfg.ExposeInternalErrors,
		Registerer:           prometheus.DefaultRegisterer,
		Gatherer:             prometheus.DefaultGatherer,
	})

	// --- HTTP server ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("server stopped gracefully")
	return nil
}
