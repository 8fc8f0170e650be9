// @title          Course Market API
// @version        1.0
// @description    Course marketplace backend: admin catalog management and user purchases.
// @BasePath       /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coursemarket/course-api/internal/api"
	"github.com/coursemarket/course-api/internal/api/handler"
	"github.com/coursemarket/course-api/internal/core/domain"
	"github.com/coursemarket/course-api/internal/core/ports"
	"github.com/coursemarket/course-api/internal/core/service"
	mongodb "github.com/coursemarket/course-api/internal/infrastructure/db/mongo"
	redisstore "github.com/coursemarket/course-api/internal/infrastructure/db/redis"
	"github.com/coursemarket/course-api/internal/pkg/config"
	"github.com/coursemarket/course-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "course-api"})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "course-api",
	})

	// 2. MongoDB
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	admins, err := mongodb.NewCredentialRepository(db, domain.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build admin store")
	}
	users, err := mongodb.NewCredentialRepository(db, domain.RoleUser)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build user store")
	}
	courseRepo := mongodb.NewCourseRepository(db)
	ledger := mongodb.NewLedgerRepository(db)

	if err := mongodb.EnsureIndexes(ctx, admins, users, courseRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	readiness := map[string]handler.DependencyCheck{
		"mongodb": handler.MongoCheck(db),
	}

	// 3. Redis catalog cache, optional
	var cache service.CatalogCache
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, catalog cache disabled")
	} else {
		defer rdb.Close()
		cache = redisstore.NewCatalogCache(rdb, cfg.Redis.CacheTTL)
		readiness["redis"] = handler.RedisCheck(rdb)
	}

	// 4. Services
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(ports.CredentialStores{
		domain.RoleAdmin: admins,
		domain.RoleUser:  users,
	}, tokens, cfg.Auth.BcryptCost, log)
	courseService := service.NewCourseService(courseRepo, cache, log)
	purchaseService := service.NewPurchaseService(courseRepo, ledger, log)

	// 5. HTTP server
	e := api.NewRouter(api.Deps{
		Logger:    log,
		Tokens:    tokens,
		Auth:      authService,
		Courses:   courseService,
		Purchases: purchaseService,
		Readiness: readiness,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
