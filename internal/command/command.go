// Package command holds the chat-surface commands and their registry.
package command

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"protocol-zero/internal/ai"
	"protocol-zero/internal/oracle"
	"protocol-zero/internal/storage"
)

// Env carries the collaborators every command may need. Built once at startup
// and passed down; there is no package-level state besides the registry.
type Env struct {
	Store    *storage.Store
	Oracle   *oracle.Oracle
	AI       ai.Provider
	ResistXP int
	PityXP   int
	Cooldown time.Duration
}

// Context is the per-invocation payload handed to Run.
type Context struct {
	Ctx     context.Context
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Args    []string
	Env     *Env
}

type Command interface {
	Name() string
	Aliases() []string
	Description() string
	Run(ctx *Context) error
}

// displayName prefers the user's global display name over the login name.
func displayName(m *discordgo.MessageCreate) string {
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}
