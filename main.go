package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/anikatalog/anime-catalog-bot/announce"
	"github.com/anikatalog/anime-catalog-bot/bot"
	"github.com/anikatalog/anime-catalog-bot/config"
	"github.com/anikatalog/anime-catalog-bot/dialog"
	"github.com/anikatalog/anime-catalog-bot/store"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "anikatbot",
		Short: "Telegram anime catalog bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: ./config.yaml)")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Bot exited with error")
	}
}

func run(configPath string) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}
	log.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")

	storeCfg := store.Config{CatalogFile: cfg.CatalogFile(), UsersFile: cfg.UsersFile()}
	catalogStore := store.NewCatalogStore(storeCfg)
	userStore := store.NewUserStore(storeCfg)

	announcer := announce.NewWorker(api, cfg.ChannelID, api.Self.UserName, cfg.AnnounceQueueSize)
	sessions := dialog.NewManager(cfg.DialogIdleTimeout)
	engine := dialog.NewEngine(sessions, catalogStore, announcer)
	b := bot.New(api, cfg, catalogStore, userStore, engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return announcer.Run(ctx) })
	g.Go(func() error { return b.Run(ctx) })

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	log.Info().Msg("Bot stopped")
	return nil
}
