// Command api serves the Broday Transportes freight API.
//
// @title                       Broday Transportes API
// @version                     1.0
// @description                 Freight lifecycle API: shippers request fretes, drivers accept and deliver them, admins correct them.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/broday/transportes/internal/api"
	"github.com/broday/transportes/internal/core/service"
	mongodb "github.com/broday/transportes/internal/infrastructure/db/mongo"
	redisdb "github.com/broday/transportes/internal/infrastructure/db/redis"
	"github.com/broday/transportes/internal/infrastructure/http/handlers"
	"github.com/broday/transportes/internal/infrastructure/queue"
	"github.com/broday/transportes/internal/pkg/config"
	"github.com/broday/transportes/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// indexer is implemented by every Mongo repository.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "broday-transportes",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
		Timeout:     cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// --- Repositories ---
	freteRepo := mongodb.NewFreteRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)
	eventRepo := mongodb.NewEventRepository(db)

	for _, repo := range []indexer{freteRepo, userRepo, vehicleRepo, eventRepo} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure mongodb indexes")
		}
	}

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(cfg.Fretes.EventWorkers, eventRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	vehicleService := service.NewVehicleService(vehicleRepo, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	freteService := service.NewFreteService(service.FreteDeps{
		Fretes:      freteRepo,
		Users:       userRepo,
		Vehicles:    vehicleService,
		Events:      eventRepo,
		Recorder:    dispatcher,
		Idempotency: redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL),
	}, service.FreteOptions{
		CancelWindow:              cfg.Fretes.CancelWindow,
		DefaultDeliveryWindow:     time.Duration(cfg.Fretes.DefaultDeliveryDays) * 24 * time.Hour,
		AvailableIncludesAccepted: cfg.Fretes.AvailableIncludeAccepted,
	}, log)

	e := api.NewRouter(api.RouterDeps{
		Auth:     authService,
		Fretes:   freteService,
		Vehicles: vehicleService,
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		JWTSecret:  cfg.JWTSecret,
		Production: cfg.IsProduction(),
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server forced to shutdown")
	}
	// In-flight requests are done; flush the audit queue before closing stores.
	dispatcher.Stop()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	log.Info().Msg("server exited")
}
