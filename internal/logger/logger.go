// Package logger — обертка над zap с настройкой по окружению.
// В dev используется человекочитаемый вывод, в prod — JSON.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Zap struct {
	*zap.Logger
}

func New(env, level string) (*Zap, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return &Zap{Logger: log}, nil
}

// Sync сбрасывает буферы. Ошибки sync для stderr игнорируются.
func (z *Zap) Sync() {
	_ = z.Logger.Sync()
}
