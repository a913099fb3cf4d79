package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/imspro/inventory-system/internal/api"
	"github.com/imspro/inventory-system/internal/core/auth"
	"github.com/imspro/inventory-system/internal/core/domain"
	"github.com/imspro/inventory-system/internal/core/ports"
	"github.com/imspro/inventory-system/internal/core/service"
	"github.com/imspro/inventory-system/internal/infrastructure/config"
	mongodb "github.com/imspro/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/imspro/inventory-system/internal/infrastructure/db/redis"
	"github.com/imspro/inventory-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	operatorRepo := mongodb.NewOperatorRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	if err := operatorRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("operator index creation failed")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("product index creation failed")
	}

	// --- Services ---
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(operatorRepo, auth.NewBcryptHasher(), issuer, sessions, log)
	inventoryService := service.NewInventoryService(productRepo, log)

	if cfg.SeedAccounts {
		seedDefaultAccounts(ctx, authService, operatorRepo, log)
	}

	// --- HTTP server ---
	e := api.NewRouter(authService, inventoryService, db, rdb, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedDefaultAccounts creates the default admin and operator accounts when
// the operator collection is empty. It goes through the regular registration
// path so secrets are hashed like any other account.
func seedDefaultAccounts(ctx context.Context, authService ports.AuthService, repo ports.OperatorRepository, log zerolog.Logger) {
	count, err := repo.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("seed: operator count failed")
		return
	}
	if count > 0 {
		return
	}

	defaults := []ports.RegisterInput{
		{Username: "admin", Password: "admin123", Email: "admin@imspro.com", FullName: "System Administrator", Role: domain.RoleAdmin},
		{Username: "operator", Password: "operator123", Email: "operator@imspro.com", FullName: "Regular Operator", Role: domain.RoleOperator},
	}
	for _, input := range defaults {
		if _, err := authService.Register(ctx, input); err != nil {
			log.Warn().Err(err).Str("username", input.Username).Msg("seed: registration failed")
			continue
		}
		log.Info().Str("username", input.Username).Msg("seed: default account created")
	}
}
