package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"reddit-persona/internal/cache"
	"reddit-persona/internal/config"
	"reddit-persona/internal/db"
	apihttp "reddit-persona/internal/http"
	"reddit-persona/internal/persona"
	"reddit-persona/internal/reddit"
	"reddit-persona/internal/repository"
	"reddit-persona/internal/service"
	"reddit-persona/internal/taxonomy"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		tax, err = taxonomy.LoadFile(cfg.TaxonomyPath)
		if err != nil {
			logger.Fatal("taxonomy load", zap.Error(err))
		}
		logger.Info("taxonomy loaded from file", zap.String("path", cfg.TaxonomyPath))
	}

	analyzer, err := persona.NewAnalyzer(cfg.AnalysisConfig(), tax, logger)
	if err != nil {
		logger.Fatal("analyzer config", zap.Error(err))
	}

	var runs repository.RunRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		runs = repository.NewPgRunRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, running without run storage")
	}

	var contentCache cache.ContentCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			contentCache = cache.NewRedisContentCache(redisClient)
		}
		cancel()
	}

	fetcher := reddit.NewClient(cfg.RedditBaseURL, cfg.RedditUserAgent, logger)
	personaSvc := service.NewPersonaService(
		logger,
		fetcher,
		analyzer,
		contentCache,
		runs,
		cfg.FetchLimit,
		time.Duration(cfg.CacheTTLMinutes)*time.Minute,
	)

	var jwtSvc *service.JWTService
	if cfg.JWTSecret != "" {
		jwtSvc = service.NewJWTService(cfg.JWTSecret, 24*time.Hour)
	} else {
		logger.Warn("jwt secret not configured, persona endpoints are open")
	}

	personaHandler := apihttp.NewPersonaHandler(logger, personaSvc)
	router := apihttp.NewRouter(logger, personaHandler, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
