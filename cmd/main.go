package main

import (
	"context"

	"evdsScraper/internal/cli"
	"evdsScraper/internal/config"
	"evdsScraper/internal/database"
	"evdsScraper/internal/logger"
	"evdsScraper/internal/migrations"
	"evdsScraper/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := migrations.Run(cfg, log); err != nil {
		log.Fatal("Ошибка миграций", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("Ошибка подключения к БД", zap.Error(err))
	}
	defer db.Close(log)

	repo := database.NewRunRepository(db.DB)
	srv := server.New(cfg, log, db)

	console := cli.New(cfg, repo, log, srv)
	console.Run(context.Background())
}
