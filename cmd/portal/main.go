package main

import (
	"context"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kcouncil/portal/internal/api"
	"github.com/kcouncil/portal/internal/config"
	"github.com/kcouncil/portal/internal/db"
	"github.com/kcouncil/portal/internal/logging"
	"github.com/kcouncil/portal/internal/mailer"
	"github.com/kcouncil/portal/internal/media"
	"github.com/kcouncil/portal/internal/services"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	if err := services.NewSetupService(database).Seed(cfg.InitAdminUser, cfg.InitAdminPass); err != nil {
		logger.Fatal("startup seeding failed", zap.Error(err))
	}

	mediaStore, err := media.NewStore(cfg.MediaRoot, logger)
	if err != nil {
		logger.Fatal("media store init failed", zap.Error(err))
	}

	handler, err := api.NewHandler(database, logger, cfg.TemplateDir, mediaStore, mailer.New(cfg.SMTP), cfg.BaseURL)
	if err != nil {
		logger.Fatal("handler init failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               "Council Portal",
		DisableStartupMessage: true,
		BodyLimit:             32 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(api.RequestLogger(logger))
	app.Use(compress.New())

	app.Static("/static", filepath.Join("web", "static"))
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("portal listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("media", cfg.MediaRoot),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
