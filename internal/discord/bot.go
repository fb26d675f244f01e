// Package discord runs the chat surface: a prefix-command bot over one
// discordgo session.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"protocol-zero/internal/command"
)

const prefix = "!"

type Bot struct {
	dg  *discordgo.Session
	env *command.Env
}

// StartBot runs the bot until ctx is cancelled.
func StartBot(ctx context.Context, token string, env *command.Env) error {
	b := &Bot{env: env}
	if err := b.run(ctx, token); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	// Message content is a privileged intent; without it the bot cannot read
	// the prefix commands at all.
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, closing Discord session")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).
		Msg("discord bot is running, the Oracle is listening")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(fields) == 0 {
		return
	}

	cmd, ok := command.Get(strings.ToLower(fields[0]))
	if !ok {
		return
	}

	cctx := &command.Context{
		Ctx:     context.Background(),
		Session: s,
		Message: m,
		Args:    fields[1:],
		Env:     b.env,
	}
	if err := cmd.Run(cctx); err != nil {
		log.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
		_, _ = s.ChannelMessageSendEmbed(m.ChannelID, &discordgo.MessageEmbed{
			Description: "The Oracle is silent. Try again later.",
			Color:       0xff3333,
		})
	}
}
