package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, falling back to system environment variables")
	}
}

// Config holds every knob the process reads from the environment.
// The storage dialect is decided once here: a non-empty DATABASE_URL selects
// Postgres, otherwise the embedded SQLite file at SQLitePath is used.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"protocol_zero.db"`

	DiscordToken string `env:"DISCORD_TOKEN"`
	DisableBot   bool   `env:"DISABLE_BOT" envDefault:"false"`

	AIProvider   string `env:"AI_PROVIDER"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	LogFile  string `env:"LOG_FILE"`

	ResistXP           int `env:"RESIST_XP" envDefault:"50"`
	PityXP             int `env:"PITY_XP" envDefault:"10"`
	ResistCooldownSecs int `env:"RESIST_COOLDOWN" envDefault:"300"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}

// ResistCooldown returns the success-path cooldown as a duration.
func (c *Config) ResistCooldown() time.Duration {
	return time.Duration(c.ResistCooldownSecs) * time.Second
}

// BotEnabled reports whether the chat surface should start. A missing token is
// not fatal: the web surface still runs.
func (c *Config) BotEnabled() bool {
	return !c.DisableBot && c.DiscordToken != ""
}
