package main

import (
	"context"

	"github.com/abhishek622/mockmate/internal/cache"
	"github.com/abhishek622/mockmate/internal/config"
	"github.com/abhishek622/mockmate/internal/database"
	"github.com/abhishek622/mockmate/internal/fetcher"
	"github.com/abhishek622/mockmate/internal/genai"
	"github.com/abhishek622/mockmate/internal/generator"
	"github.com/abhishek622/mockmate/internal/handler"
	"github.com/abhishek622/mockmate/internal/logger"
	"github.com/abhishek622/mockmate/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type application struct {
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Logger  *zap.Logger
	Config  *config.Config
	Handler *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := cache.Ping(ctx, rdb); err != nil {
			sugar.Warnw("redis unreachable, continuing without cache", "err", err)
			rdb = nil
		}
	}

	repo := repository.NewRepository(pool)
	bank := repository.NewBankRepository(pool, cache.NewRecentTexts(rdb, cfg.Redis.TTL))

	genaiClient := genai.NewClient(cfg.Genai.APIKey, cfg.Genai.Model, cfg.Genai.BaseURL, cfg.Genai.Timeout)

	pipeline := &generator.Pipeline{
		Service:        genaiClient,
		Bank:           bank,
		Store:          repo,
		Logger:         log,
		BaseCount:      cfg.Pipeline.BaseCount,
		ExclusionLimit: cfg.Pipeline.ExclusionLimit,
	}

	h := &handler.Handler{
		Logger:   log,
		Pipeline: pipeline,
		Repo:     repo,
		Fetcher:  fetcher.NewFetcher(),
	}

	app := &application{
		DB:      pool,
		Redis:   rdb,
		Logger:  log,
		Config:  cfg,
		Handler: h,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
