// Package ai generates roast one-liners through pluggable text providers.
package ai

import (
	"context"

	"github.com/rs/zerolog/log"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Provider interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// NewProvider selects a provider from configuration. An explicit name wins;
// with no name, a Gemini key selects Gemini and the keyless pollinations
// endpoint is the fallback. "none" disables generation entirely, in which case
// callers get canned roasts.
func NewProvider(name, geminiKey string) Provider {
	switch name {
	case "gemini":
		p, err := NewGeminiProvider(geminiKey, "")
		if err != nil {
			log.Warn().Err(err).Msg("gemini provider unavailable, falling back to pollinations")
			return NewPollinationsProvider()
		}
		return p
	case "pollinations":
		return NewPollinationsProvider()
	case "none":
		return nil
	case "":
		if geminiKey != "" {
			if p, err := NewGeminiProvider(geminiKey, ""); err == nil {
				return p
			}
			log.Warn().Msg("gemini provider unavailable, falling back to pollinations")
		}
		return NewPollinationsProvider()
	default:
		log.Warn().Str("provider", name).Msg("unsupported AI_PROVIDER, falling back to pollinations")
		return NewPollinationsProvider()
	}
}
