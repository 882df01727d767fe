// Package server поднимает HTTP API над журналом запусков скрейпера.
package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"evdsScraper/internal/config"
	"evdsScraper/internal/database"
	"evdsScraper/internal/logger"
)

type Server struct {
	cfg  *config.Cfg
	log  *logger.Zap
	repo *database.RunRepository
}

func New(cfg *config.Cfg, log *logger.Zap, db *database.Database) *Server {
	return &Server{
		cfg:  cfg,
		log:  log,
		repo: database.NewRunRepository(db.DB),
	}
}

func (s *Server) Run(ctx context.Context) error {
	r := gin.New()
	r.Use(gin.Recovery())

	// Простейший лог-мидлвар
	r.Use(func(c *gin.Context) {
		s.log.Info("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Список запусков
	r.GET("/api/runs", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		runs, err := s.repo.ListRuns(limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"runs": runs})
	})

	// Детали запуска
	r.GET("/api/runs/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "невалидный id"})
			return
		}

		run, err := s.repo.GetRunByID(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "запуск не найден"})
			return
		}
		c.JSON(http.StatusOK, run)
	})

	// Шаги запуска (по одной записи на переменную)
	r.GET("/api/runs/:id/steps", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "невалидный id"})
			return
		}

		steps, err := s.repo.GetStepsByRunID(uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"steps": steps})
	})

	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	s.log.Info("HTTP сервер запущен", zap.String("addr", s.cfg.Server.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
