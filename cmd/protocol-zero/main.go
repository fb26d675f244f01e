package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"protocol-zero/internal/ai"
	"protocol-zero/internal/command"
	"protocol-zero/internal/config"
	"protocol-zero/internal/discord"
	"protocol-zero/internal/logging"
	"protocol-zero/internal/oracle"
	"protocol-zero/internal/storage"
	"protocol-zero/internal/web"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogFile)
	log.Info().Msg("starting protocol-zero")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening storage")
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensuring schema")
	}
	log.Info().Stringer("dialect", store.Dialect()).Msg("storage ready")

	provider := ai.NewProvider(cfg.AIProvider, cfg.GeminiAPIKey)

	env := &command.Env{
		Store:    store,
		Oracle:   oracle.New(),
		AI:       provider,
		ResistXP: cfg.ResistXP,
		PityXP:   cfg.PityXP,
		Cooldown: cfg.ResistCooldown(),
	}

	errCh := make(chan error, 2)

	go func() {
		errCh <- web.New(store, env.Oracle, provider, cfg.PityXP).Run(ctx, cfg.HTTPAddr)
	}()

	switch {
	case cfg.BotEnabled():
		go func() {
			errCh <- discord.StartBot(ctx, cfg.DiscordToken, env)
		}()
	case cfg.DisableBot:
		log.Info().Msg("chat surface disabled by DISABLE_BOT")
	default:
		log.Warn().Msg("DISCORD_TOKEN not set, running web surface only")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("received signal, shutting down")
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("service error")
		}
		cancel()
	}

	log.Info().Msg("protocol-zero exited cleanly")
}
