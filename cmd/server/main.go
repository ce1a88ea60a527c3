package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/CloveTwilight3/doughmination-backend/internal/api"
	"github.com/CloveTwilight3/doughmination-backend/internal/core/service"
	"github.com/CloveTwilight3/doughmination-backend/internal/infrastructure/config"
	mongodb "github.com/CloveTwilight3/doughmination-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/CloveTwilight3/doughmination-backend/internal/infrastructure/db/redis"
	"github.com/CloveTwilight3/doughmination-backend/internal/infrastructure/pluralkit"
	"github.com/CloveTwilight3/doughmination-backend/internal/infrastructure/store/userfile"
	"github.com/CloveTwilight3/doughmination-backend/internal/realtime"
	"github.com/CloveTwilight3/doughmination-backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userStore, err := userfile.New(filepath.Join(cfg.DataDir, "users.json"), cfg.Owner.Username)
	if err != nil {
		log.Fatal().Err(err).Msg("user store init failed")
	}

	users := service.NewUserService(userStore, service.OwnerBootstrap{
		Username:    cfg.Owner.Username,
		Password:    cfg.Owner.Password,
		DisplayName: cfg.Owner.DisplayName,
	}, log)
	if err := users.Bootstrap(); err != nil {
		log.Fatal().Err(err).Msg("owner bootstrap failed")
	}

	system := pluralkit.NewClient(pluralkit.Config{
		BaseURL:   cfg.PluralKit.BaseURL,
		Token:     cfg.PluralKit.Token,
		SystemRef: cfg.PluralKit.System,
	}, log)

	tagRepo := mongodb.NewTagRepository(db)
	statusRepo := mongodb.NewStatusRepository(db)
	stateRepo := mongodb.NewStateRepository(db)
	memberCache := redisdb.NewMemberCache(rdb)

	directory := service.NewMemberDirectory(system, tagRepo, statusRepo, memberCache, log)

	hub := realtime.NewHub(log)
	dispatcher := service.NewUpdateDispatcher(directory, hub, log)

	e := api.NewRouter(api.Deps{
		Log:         log,
		JWTSecret:   cfg.JWTSecret,
		DataDir:     cfg.DataDir,
		BaseURL:     cfg.BaseURL,
		Mongo:       db,
		Redis:       rdb,
		Users:       users,
		Tokens:      service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		System:      system,
		Directory:   directory,
		MemberCache: memberCache,
		Fronts:      service.NewFrontService(system, directory, dispatcher, log),
		Tags:        service.NewTagService(tagRepo, memberCache, log),
		Statuses:    service.NewStatusService(statusRepo),
		States:      service.NewMentalStateService(stateRepo, dispatcher),
		Insights:    service.NewInsightsService(system, directory),
		Dispatcher:  dispatcher,
		Hub:         hub,
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
