package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/floriansw/discord-command-utils/internal/commandparser"
	"github.com/floriansw/discord-command-utils/internal/runner"
)

const argumentsOption = "arguments"

type interactive interface {
	runner.Runner
	CanHandle(customId string) bool
	HandleInteraction(ctx context.Context, i *discordgo.Interaction) error
}

// Base carries what every command has: its argument parser and the runners it started.
type Base struct {
	logger  *slog.Logger
	Parser  *commandparser.Parser
	Runners *runner.Pool
}

func NewBase(l *slog.Logger, p *commandparser.Parser, timeout time.Duration, allowDuplicated bool) Base {
	return Base{
		logger:  l,
		Parser:  p,
		Runners: runner.NewPool(l, timeout, allowDuplicated),
	}
}

func (b *Base) Usage() string {
	return b.Parser.Usage()
}

// argumentsDefinition is the single string option raw arguments are typed into.
func (b *Base) argumentsDefinition() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        argumentsOption,
		Description: truncate(b.Parser.Usage(), 100),
		Required:    len(b.Parser.Positionals()) > 0,
	}}
}

// Arguments returns the whitespace separated tokens of the arguments option.
func Arguments(i *discordgo.InteractionCreate) []string {
	for _, o := range i.ApplicationCommandData().Options {
		if o.Name == argumentsOption && o.Type == discordgo.ApplicationCommandOptionString {
			return strings.Fields(o.StringValue())
		}
	}
	return nil
}

func ownerID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Base) find(customId string) interactive {
	r := b.Runners.Find(func(r runner.Runner) bool {
		ir, ok := r.(interactive)
		return ok && ir.CanHandle(customId)
	})
	if r == nil {
		return nil
	}
	return r.(interactive)
}

func (b *Base) CanHandle(customId string) bool {
	return b.find(customId) != nil
}

func (b *Base) OnMessageComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handle(s, i.Interaction, i.MessageComponentData().CustomID)
}

func (b *Base) OnModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handle(s, i.Interaction, i.ModalSubmitData().CustomID)
}

func (b *Base) handle(s *discordgo.Session, i *discordgo.Interaction, customId string) {
	ctx := context.Background()
	r := b.find(customId)
	if r == nil {
		return
	}
	b.Runners.Touch(r)
	if err := r.HandleInteraction(ctx, i); err != nil {
		b.logger.Error("handle-interaction", "custom_id", customId, "error", err)
		if _, err := ErrorWindow(err, "").Respond(ctx, s, i); err != nil {
			b.logger.Error("respond-error", "error", err)
		}
	}
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
