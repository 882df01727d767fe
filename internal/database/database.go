package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"evdsScraper/internal/config"
	"evdsScraper/internal/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(cfg *config.Cfg, log *logger.Zap) (*Database, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к PostgreSQL: %w", err)
	}

	log.Info("Подключение к БД установлено",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.Name),
	)

	return &Database{DB: db}, nil
}

func (d *Database) Close(log *logger.Zap) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		log.Warn("Ошибка получения соединения при закрытии", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("Ошибка закрытия соединения", zap.Error(err))
	}
}
