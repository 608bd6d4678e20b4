package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/floriansw/discord-command-utils/internal/commandparser"
	"github.com/floriansw/discord-command-utils/internal/window"
)

const colorBlue = 0x3498db

var ErrUnknownCommand = errors.New("unknown command")

type help struct {
	Base
	pageSize int

	mu     sync.RWMutex
	usages map[string]string
}

// NewHelp returns the help command: help [command]. It lists the usage of every added
// command, pageSize per page. p must allow optional positionals.
func NewHelp(l *slog.Logger, p *commandparser.Parser, timeout time.Duration, pageSize int) *help {
	if pageSize <= 0 {
		pageSize = 5
	}
	p.MustAddArgument(false, "command")
	return &help{
		Base:     NewBase(l, p, timeout, false),
		pageSize: pageSize,
		usages:   map[string]string{},
	}
}

func (h *help) Add(name, usage string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.usages[name] = usage
}

func (h *help) Definition(cmd string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmd,
		Description: "List all commands",
		Options:     h.argumentsDefinition(),
	}
}

func (h *help) page(names []string) window.Window {
	embed := &discordgo.MessageEmbed{Title: "Commands", Color: colorBlue}
	for _, n := range names {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  n,
			Value: fmt.Sprintf("`%s %s`", n, h.usages[n]),
		})
	}
	return window.Window{Embeds: []*discordgo.MessageEmbed{embed}, Ephemeral: true}
}

func (h *help) pages(args []string) ([]window.Window, error) {
	ns, err := h.Parser.Parse(args)
	if err != nil {
		return nil, err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	if ns.Has("command") {
		name := ns.String("command")
		if _, ok := h.usages[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}
		return []window.Window{h.page([]string{name})}, nil
	}

	var names []string
	for n := range h.usages {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) == 0 {
		w := h.page(nil)
		w.Embeds[0].Description = "No commands registered."
		return []window.Window{w}, nil
	}
	var windows []window.Window
	for start := 0; start < len(names); start += h.pageSize {
		windows = append(windows, h.page(names[start:min(start+h.pageSize, len(names))]))
	}
	return windows, nil
}

func (h *help) OnCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	windows, err := h.pages(Arguments(i))
	if err != nil {
		if _, err := ErrorWindow(err, h.Usage()).Respond(ctx, s, i.Interaction); err != nil {
			h.logger.Error("help-respond", "error", err)
		}
		return
	}
	pages, err := window.NewPages(s, windows, 0)
	if err != nil {
		h.logger.Error("help-pages", "error", err)
		return
	}
	if err := h.Runners.Start(ctx, ownerID(i.Interaction), pages, i.Interaction); err != nil {
		h.logger.Error("help-run", "error", err)
	}
}
