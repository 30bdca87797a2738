package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/promolab/promo-board/internal/cache"
	"github.com/promolab/promo-board/internal/config"
	"github.com/promolab/promo-board/internal/database"
	"github.com/promolab/promo-board/internal/handler"
	"github.com/promolab/promo-board/internal/repository"
	"github.com/promolab/promo-board/internal/router"
	"github.com/promolab/promo-board/internal/service"
)

// main wires every collaborator explicitly and hands the assembled
// handlers to the router: no package-level connection state anywhere.
// Initialization order is config, logger, store, cache, outbound clients,
// handlers; shutdown reverses it.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	mongoClient, db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongodb connect failed", zap.Error(err))
	}

	// A nil Redis client is fine: caching and rate limiting degrade to
	// pass-through rather than blocking startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unreachable, cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	if !cacheCfg.Enabled {
		rdb = nil
	}

	promoRepo := repository.NewPromotionRepo(db)
	anncRepo := repository.NewAnnouncementRepo(db)
	promoCache := cache.NewPromotionCache(rdb, cacheCfg.Prefix, cacheCfg.TTL, logger)
	relay := service.NewImageRelay(cfg.ImageRelayURL, cfg.ImageRelayKey, logger)
	events := service.NewEventPublisher(cfg.BrokerURL, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	public := handler.NewPublicHandler(promoRepo, anncRepo, promoCache, relay)
	admin := handler.NewAdminHandler(promoRepo, anncRepo, promoCache, relay, events)
	auth := handler.NewAuthHandler(cfg)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, public, config.LoadRateLimitConfig(), rdb)
	router.RegisterAdmin(e, auth, admin, cfg.JWTSecret)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	go func() {
		if err := e.Start(addr); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown: stop accepting requests, then drop the store
	// connection last.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Error("mongodb disconnect failed", zap.Error(err))
	}
}
