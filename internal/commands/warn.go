package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/floriansw/discord-command-utils/internal/commandparser"
	"github.com/floriansw/discord-command-utils/internal/window"
)

const colorOrange = 0xe67e22

type warn struct {
	Base
}

// NewWarn returns the warn command: warn <user...> [--reason|-r ...].
func NewWarn(l *slog.Logger, p *commandparser.Parser, timeout time.Duration) *warn {
	p.MustAddArgument(true, "user").
		MustAddArgument(false, "--reason", "-r")
	return &warn{Base: NewBase(l, p, timeout, false)}
}

func (w *warn) Definition(cmd string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmd,
		Description: "Warn a user",
		Options:     w.argumentsDefinition(),
	}
}

func (w *warn) window(args []string) window.Window {
	ns, err := w.Parser.Parse(args)
	if err != nil {
		return ErrorWindow(err, w.Usage())
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Warning",
		Description: fmt.Sprintf("%s has been warned.", ns.String("user")),
		Color:       colorOrange,
	}
	if ns.Has("reason") {
		reason := ns.String("reason")
		if reason == "" {
			reason = "-"
		}
		embed.Fields = []*discordgo.MessageEmbedField{{Name: "Reason", Value: reason}}
	}
	return window.Window{Embeds: []*discordgo.MessageEmbed{embed}}
}

func (w *warn) OnCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if _, err := w.window(Arguments(i)).Respond(context.Background(), s, i.Interaction); err != nil {
		w.logger.Error("warn-respond", "error", err)
	}
}

func (w *warn) OnMessage(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if _, err := w.window(args).Reply(context.Background(), s, m.Message); err != nil {
		w.logger.Error("warn-reply", "error", err)
	}
}
