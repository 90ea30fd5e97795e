package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/giveaway-bot/giveawaybot"
	"github.com/disgoorg/giveaway-bot/giveawaybot/commands"
	"github.com/disgoorg/giveaway-bot/giveawaybot/components"
	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/giveaway"
	"github.com/disgoorg/giveaway-bot/giveawaybot/handlers"
	"github.com/disgoorg/giveaway-bot/giveawaybot/logger"
	"github.com/disgoorg/giveaway-bot/giveawaybot/platform"
	"github.com/disgoorg/giveaway-bot/giveawaybot/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	// .env is optional; deployment platforms inject the variables directly.
	_ = godotenv.Load()

	cfg, err := giveawaybot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	logger.LogSystem("Starting giveaway bot",
		slog.String("version", version),
		slog.String("commit", commit))

	store := giveaway.OpenStore(cfg.Giveaway.StoragePath)
	slog.Info("Giveaway store ready",
		slog.String("type", "db"),
		slog.String("path", cfg.Giveaway.StoragePath),
		slog.Int("giveaways", store.Len()))

	b := giveawaybot.New(*cfg, version, commit)

	h := handler.New()
	h.Component(components.MenuCustomID, handlers.WrapComponentWithLogging("giveaway-menu", components.MenuHandler(b)))
	h.Component(components.ValidateCustomID, handlers.WrapComponentWithLogging("giveaway-validate", components.ValidateHandler(b)))
	h.Component(components.CancelCustomID, handlers.WrapComponentWithLogging("giveaway-cancel", components.CancelHandler(b)))
	h.Component(components.ListPagePattern, handlers.WrapComponentWithLogging("giveaway-list", components.ListPageHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), handlers.MessageHandler(b)); err != nil {
		logger.LogError("Failed to setup bot", err)
		os.Exit(-1)
	}

	sessionTimeout := config.SessionTimeout
	if cfg.Giveaway.SessionTimeoutSecs > 0 {
		sessionTimeout = time.Duration(cfg.Giveaway.SessionTimeoutSecs) * time.Second
	}
	pollInterval := config.PollInterval
	if cfg.Giveaway.PollIntervalSecs > 0 {
		pollInterval = time.Duration(cfg.Giveaway.PollIntervalSecs) * time.Second
	}

	b.Platform = platform.New(b.Client)
	sessions := giveaway.NewSessionStore(sessionTimeout)
	b.Engine = giveaway.NewEngine(store, sessions, giveaway.NewSelector(rand.NewSource(time.Now().UnixNano())), b.Platform, b.Platform)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions.StartCleanupRoutine(ctx)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return giveaway.NewScheduler(b.Engine, pollInterval).Run(gCtx)
	})
	g.Go(func() error {
		return web.NewServer(cfg.Web.Port).Serve(gCtx)
	})

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		b.Client.Close(closeCtx)
	}()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(openCtx); err != nil {
		logger.LogError("Failed to open gateway", err)
		os.Exit(-1)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.",
		slog.String("prefix", cfg.Bot.Prefix),
		slog.Int("commands", len(commands.All())))

	if err = g.Wait(); err != nil {
		logger.LogError("Background worker exited", err)
		os.Exit(-1)
	}
	logger.LogSystem("Shutting down bot...")
}
