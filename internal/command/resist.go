package command

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(WithCommandLogger(&ResistCommand{}))
}

// ResistCommand is the success path: XP for a resisted temptation, gated by
// the cooldown so it cannot be spammed.
type ResistCommand struct{}

func (c *ResistCommand) Name() string        { return "resist" }
func (c *ResistCommand) Aliases() []string   { return nil }
func (c *ResistCommand) Description() string { return "Log a resisted temptation and earn XP" }

func (c *ResistCommand) Run(ctx *Context) error {
	grant, err := ctx.Env.Store.RegisterSuccess(ctx.Ctx,
		ctx.Message.Author.ID, displayName(ctx.Message), ctx.Env.ResistXP, ctx.Env.Cooldown)
	if err != nil {
		return fmt.Errorf("recording resistance: %w", err)
	}

	if grant.OnCooldown {
		wait := grant.RetryAfter.Round(time.Second)
		_, err = ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("The gate is closed. Come back in **%s**.", wait),
			Color:       0x555555,
		})
		return err
	}

	_, err = ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "Resistance Logged",
		Description: ctx.Env.Oracle.Encourage(),
		Color:       0x00ff41,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Level %d · %d XP · streak %d", grant.Level, grant.XP, grant.Streak),
		},
	})
	return err
}
