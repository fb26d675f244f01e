package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"protocol-zero/internal/ai"
	"protocol-zero/internal/oracle"
)

func init() {
	Register(WithCommandLogger(&OracleCommand{}))
}

// OracleCommand is the failure path: the caller confesses, the oracle picks a
// punishment, the event is logged and the streak resets.
type OracleCommand struct{}

func (c *OracleCommand) Name() string        { return "oracle" }
func (c *OracleCommand) Aliases() []string   { return []string{"punish"} }
func (c *OracleCommand) Description() string { return "Confess a failure and receive your verdict" }

func (c *OracleCommand) Run(ctx *Context) error {
	verdict := ctx.Env.Oracle.Consult()
	name := displayName(ctx.Message)

	grant, err := ctx.Env.Store.RegisterFailure(ctx.Ctx, ctx.Message.Author.ID, name, verdict.String(), ctx.Env.PityXP)
	if err != nil {
		return fmt.Errorf("recording verdict: %w", err)
	}

	roast := ai.Roast(ctx.Ctx, ctx.Env.AI, name, verdict.String())

	_, err = ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "The Oracle Speaks",
		Description: fmt.Sprintf("%s\n\n_%s_", verdict, roast),
		Color:       severityColor(verdict.Severity),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Level %d · %d XP · streak reset", grant.Level, grant.XP),
		},
	})
	return err
}

func severityColor(s oracle.Severity) int {
	switch s {
	case oracle.SeverityMild:
		return 0x00ff41
	case oracle.SeverityBrutal:
		return 0xff3333
	default:
		return 0xffaa00
	}
}
