// Command api serves the inventory HTTP API.
//
//	@title						Inventory API
//	@version					1.0
//	@description				Items and users CRUD with opaque bearer-token authentication.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/99minutos/inventory-api/internal/api"
	"github.com/99minutos/inventory-api/internal/api/metrics"
	"github.com/99minutos/inventory-api/internal/core/service"
	rediscache "github.com/99minutos/inventory-api/internal/infrastructure/db/redis"
	"github.com/99minutos/inventory-api/internal/infrastructure/storage"
	"github.com/99minutos/inventory-api/internal/pkg/config"
	"github.com/99minutos/inventory-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel, "inventory-api"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg, logger.Component("storage"),
		rediscache.WithResultCounter(metrics.TokenCacheTotal))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}

	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	authService := service.NewAuthService(backend.Users, backend.Tokens, hasher, cfg.Auth.AccessTokenTTL, logger.Component("auth"))
	userService := service.NewUserService(backend.Users, hasher, logger.Component("users"))
	itemService := service.NewItemService(backend.Items, logger.Component("items"))

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		UserService: userService,
		ItemService: itemService,
		Checks:      backend.Checks,
		Log:         logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := backend.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("storage close failed")
	}

	log.Info().Msg("server stopped")
}
