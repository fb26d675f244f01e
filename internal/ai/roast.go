package ai

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

var fallbackRoasts = []string{
	"The AI refused to look at you. Do the punishment anyway.",
	"Even the machine is disappointed, and it has no feelings.",
	"Your discipline called. It left a voicemail. It's leaving you.",
	"No roast today. Your life choices speak for themselves.",
	"The Oracle has seen worse. Not recently, though.",
}

// Roast produces a one-liner about the verdict. Any provider failure or
// missing provider degrades to a canned line; callers never see an error.
func Roast(ctx context.Context, p Provider, displayName, verdict string) string {
	if p == nil {
		return FallbackRoast()
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	messages := []Message{
		{
			Role: "system",
			Content: "You are the Oracle of Protocol Zero, a merciless accountability machine. " +
				"Reply with one short, dry, cutting line. No emojis, no preamble.",
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("%s was just sentenced to: %q. Roast them in one line.", displayName, verdict),
		},
	}

	reply, err := p.Generate(ctx, messages)
	if err != nil {
		log.Warn().Err(err).Msg("roast generation failed, serving canned line")
		return FallbackRoast()
	}
	return reply
}

// FallbackRoast returns a random canned line.
func FallbackRoast() string {
	return fallbackRoasts[rand.Intn(len(fallbackRoasts))]
}
