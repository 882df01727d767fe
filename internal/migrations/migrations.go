// Package migrations применяет SQL-миграции схемы при старте.
package migrations

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"evdsScraper/internal/config"
	"evdsScraper/internal/logger"
)

func Run(cfg *config.Cfg, log *logger.Zap) error {
	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	m, err := migrate.New(cfg.Migrations.Path, databaseURL)
	if err != nil {
		return fmt.Errorf("ошибка инициализации миграций: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Миграции не требуются")
			return nil
		}
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	log.Info("Миграции применены", zap.String("path", cfg.Migrations.Path))
	return nil
}
