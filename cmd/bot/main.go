package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/dgt-vocab-bot/internal/app"
	"github.com/aliskhannn/dgt-vocab-bot/internal/config"
	"github.com/aliskhannn/dgt-vocab-bot/internal/delivery/telegram"
	"github.com/aliskhannn/dgt-vocab-bot/internal/logger"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatal("TELEGRAM_API_TOKEN is not set")
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cards, err := app.LoadCatalog(cfg, lg)
	if err != nil {
		lg.Fatal("failed to load catalog", zap.Error(err))
	}

	store, closeStore, err := app.OpenStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open progress store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			lg.Error("failed to close progress store", zap.Error(err))
		}
	}()

	sessions := service.NewSessionManager(cards, store, app.SessionOptions(cfg), lg)

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()
	if _, err := scheduler.Every(cfg.Sessions.EvictEvery).Do(func() {
		sessions.EvictIdle(cfg.Sessions.IdleTTL)
	}); err != nil {
		lg.Fatal("failed to schedule session eviction", zap.Error(err))
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	handler := telegram.NewHandler(bot, lg, sessions, cfg.Quiz.MinCards)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
