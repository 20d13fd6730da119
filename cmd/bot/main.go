package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"knox-bundles/internal/bot"
	"knox-bundles/internal/config"
	"knox-bundles/internal/infrastructure/logger"
	"knox-bundles/internal/infrastructure/sheets"
	"knox-bundles/internal/order"
	"knox-bundles/internal/server"
	"knox-bundles/internal/webapp"
)

func main() {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	sheetsClient, err := sheets.NewClient(context.Background(), cfg.Sheets)
	if err != nil {
		zapLogger.Fatal("connecting to ledger", zap.Error(err))
	}
	zapLogger.Info("ledger connected", zap.String("sheet", cfg.Sheets.SheetName))

	workflow := order.NewModule(sheetsClient, cfg, zapLogger)

	orderBot, err := bot.New(cfg.Telegram.Token, workflow, zapLogger)
	if err != nil {
		zapLogger.Fatal("creating bot", zap.Error(err))
	}

	catalog, err := webapp.LoadCatalog(cfg.WebApp.BundlesFile)
	if err != nil {
		zapLogger.Fatal("loading bundle catalog", zap.Error(err))
	}

	router := webapp.NewRouter(catalog, cfg.WebApp.AssetsDir, zapLogger)
	srv := server.New(cfg.WebApp.Port, router, zapLogger)

	botCtx, cancelBot := context.WithCancel(context.Background())
	defer cancelBot()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	go func() {
		if err := orderBot.Run(botCtx); err != nil {
			zapLogger.Fatal("bot error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")
	cancelBot()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("stopped gracefully")
}
