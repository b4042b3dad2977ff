package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/nurtureai/nurtureai/internal/config"
	"github.com/nurtureai/nurtureai/internal/links"
	"github.com/nurtureai/nurtureai/internal/logging"
	"github.com/nurtureai/nurtureai/internal/service"
	"github.com/nurtureai/nurtureai/internal/vision/backend"
	"github.com/nurtureai/nurtureai/internal/web"
	"github.com/nurtureai/nurtureai/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	visionAnalyzer, closeVision, err := backend.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize vision backend", "error", err)
		return
	}
	defer closeVision()

	linkBuilder, err := links.NewBuilder(cfg.ChatNumber, cfg.ChatGreeting)
	if err != nil {
		logger.Error("invalid chat link configuration", "error", err)
		return
	}
	if cfg.ChatNumber == "" {
		logger.Info("WHATSAPP_CHAT_NUMBER is not set; chat link disabled")
	}

	analysisService := service.NewAnalysisService(visionAnalyzer, linkBuilder, cfg.ModelTimeout, logger)
	server := web.NewServer(analysisService, templates.FS, logger)
	if floor := cfg.ModelTimeout + 30*time.Second; server.WriteTimeout < floor {
		server.WriteTimeout = floor
	}

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
