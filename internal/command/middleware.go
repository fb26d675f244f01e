package command

import (
	"time"

	"github.com/rs/zerolog/log"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx *Context) error
}

func (w *wrappedCommand) Run(ctx *Context) error {
	return w.wrap(ctx)
}

// WithCommandLogger logs every invocation with its user, duration and outcome.
func WithCommandLogger(cmd Command) Command {
	return &wrappedCommand{
		Command: cmd,
		wrap: func(ctx *Context) error {
			start := time.Now()
			err := cmd.Run(ctx)
			evt := log.Info()
			if err != nil {
				evt = log.Error().Err(err)
			}
			evt.
				Str("command", cmd.Name()).
				Str("user", ctx.Message.Author.Username).
				Str("guild", ctx.Message.GuildID).
				Dur("took", time.Since(start)).
				Msg("command handled")
			return err
		},
	}
}
