package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(WithCommandLogger(&StatsCommand{}))
}

type StatsCommand struct{}

func (c *StatsCommand) Name() string        { return "stats" }
func (c *StatsCommand) Aliases() []string   { return nil }
func (c *StatsCommand) Description() string { return "Show your level, XP and streak" }

func (c *StatsCommand) Run(ctx *Context) error {
	stats, err := ctx.Env.Store.SubjectStats(ctx.Ctx, ctx.Message.Author.ID)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	toNext := stats.Level*100 - stats.XP
	_, err = ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Ledger", displayName(ctx.Message)),
		Color: 0x00ff41,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", stats.Level), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("%d", stats.XP), Inline: true},
			{Name: "Streak", Value: fmt.Sprintf("%d", stats.Streak), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d XP to level %d", toNext, stats.Level+1),
		},
	})
	return err
}
