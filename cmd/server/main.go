// The blog API server. Serves the four entity collections over HTTP backed
// by MongoDB, with a Redis-backed list cache and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/yamacbayin/blog-admin-panel/internal/api"
	"github.com/yamacbayin/blog-admin-panel/internal/infrastructure/config"
	mongodb "github.com/yamacbayin/blog-admin-panel/internal/infrastructure/db/mongo"
	redisdb "github.com/yamacbayin/blog-admin-panel/internal/infrastructure/db/redis"
	"github.com/yamacbayin/blog-admin-panel/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		startupLog := logger.For("startup")
		startupLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Service: "server",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Server.Mongo.URI,
		Database: cfg.Server.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("disconnect mongodb")
		}
	}()

	repos := mongodb.NewRepositories(db)
	if err := repos.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	// Redis is optional: on failure the server runs without the list cache.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Server.Redis.Addr,
		DB:   cfg.Server.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, list cache disabled")
		rdb = nil
	}

	e := api.NewRouter(api.Dependencies{
		Users:      repos.Users,
		Categories: repos.Categories,
		Posts:      repos.Posts,
		Comments:   repos.Comments,
		Cache:      redisdb.NewListCache(rdb, logger.For("cache")),
		Mongo:      db,
		Redis:      rdb,
		Log:        logger.For("api"),
	})

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
