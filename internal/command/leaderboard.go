package command

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(WithCommandLogger(&LeaderboardCommand{}))
}

const leaderboardSize = 5

type LeaderboardCommand struct{}

func (c *LeaderboardCommand) Name() string        { return "leaderboard" }
func (c *LeaderboardCommand) Aliases() []string   { return []string{"top"} }
func (c *LeaderboardCommand) Description() string { return "Show the top disciplined subjects" }

func (c *LeaderboardCommand) Run(ctx *Context) error {
	board, err := ctx.Env.Store.Leaderboard(ctx.Ctx, leaderboardSize)
	if err != nil {
		return fmt.Errorf("reading leaderboard: %w", err)
	}

	if len(board) == 0 {
		_, err = ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, &discordgo.MessageEmbed{
			Description: "The ledger is empty. Nobody has suffered yet.",
			Color:       0x555555,
		})
		return err
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for i, e := range board {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&b, "%s **%s** — level %d, %d XP\n", rank, e.DisplayName, e.Level, e.XP)
	}

	_, err = ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, &discordgo.MessageEmbed{
		Title:       "Hall of Discipline",
		Description: b.String(),
		Color:       0x00ff41,
	})
	return err
}
