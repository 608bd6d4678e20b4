package discord

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/floriansw/discord-command-utils/internal"
)

type discordApp struct {
	logger          *slog.Logger
	session         *discordgo.Session
	config          *internal.Config
	commands        []*discordgo.ApplicationCommand
	commandHandlers map[string]internal.Command
	limiter         *limiter
}

func New(logger *slog.Logger, c *internal.Config, session *discordgo.Session, handlers map[string]internal.Command) *discordApp {
	rate := c.Rate()
	handler := &discordApp{
		logger:   logger,
		session:  session,
		config:   c,
		commands: []*discordgo.ApplicationCommand{},
		limiter:  newLimiter(rate.PerMinute, rate.Burst),
	}

	handler.commandHandlers = handlers
	for cmd, command := range handler.commandHandlers {
		handler.commands = append(handler.commands, command.Definition(cmd))
	}

	return handler
}

func containsCommand(c []*discordgo.ApplicationCommand, cmd string) bool {
	for _, command := range c {
		if command.Name == cmd {
			return true
		}
	}
	return false
}

func (a *discordApp) Listen() error {
	cmds, err := a.session.ApplicationCommands(a.session.State.User.ID, a.config.GuildId())
	if err != nil {
		return err
	}
	for _, command := range cmds {
		if !containsCommand(a.commands, command.Name) {
			if err := a.session.ApplicationCommandDelete(a.session.State.User.ID, a.config.GuildId(), command.ID); err != nil {
				a.logger.Error("delete-command", "name", command.Name, "error", err)
			}
		}
	}

	for _, v := range a.commands {
		if containsCommand(cmds, v.Name) {
			continue
		}
		_, err := a.session.ApplicationCommandCreate(a.session.State.User.ID, a.config.GuildId(), v)
		if err != nil {
			a.logger.Error("create-command", "command", v.Name, "error", err)
		}
	}

	a.session.AddHandler(a.onInteraction)
	a.session.AddHandler(a.onMessage)
	return nil
}

func (a *discordApp) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if g := a.config.GuildId(); g != "" && i.GuildID != g {
		a.error(s, i.Interaction, "The command is not available for your discord server.")
		return
	}
	var (
		name string
		h    internal.Command
		mc   internal.MessageComponent
		ok   bool
	)
	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		fallthrough
	case discordgo.InteractionApplicationCommand:
		name = i.ApplicationCommandData().Name
		if h, ok = a.commandHandlers[name]; !ok {
			a.error(s, i.Interaction, "Command does not exist: "+name)
			return
		}
	case discordgo.InteractionMessageComponent:
		cid := i.MessageComponentData().CustomID
		for cmd, command := range a.commandHandlers {
			if cast, ok := command.(internal.MessageComponent); ok && cast.CanHandle(cid) {
				name = cmd
				mc = cast
			}
		}
		if mc == nil {
			a.error(s, i.Interaction, "This message is no longer active.")
			return
		}
	case discordgo.InteractionModalSubmit:
		cid := i.ModalSubmitData().CustomID
		a.logger.Info("modalsubmit", "custom_id", cid)
		for _, command := range a.commandHandlers {
			if cast, ok := command.(internal.ModalSubmit); ok && cast.CanHandle(cid) {
				cast.OnModalSubmit(s, i)
				return
			}
		}
		a.error(s, i.Interaction, "This message is no longer active.")
		return
	default:
		a.logger.Error("unhandled-interaction", "error", errors.New("unhandled: "+i.Type.String()))
		a.error(s, i.Interaction, "unhandled interaction type: "+i.Type.String())
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		a.logger.Info("autocomplete", "name", name)
		if ac, tok := h.(internal.Autocomplete); tok {
			ac.OnAutocomplete(s, i)
		} else {
			a.error(s, i.Interaction, "Command does not support autocomplete: "+name)
		}
	case discordgo.InteractionMessageComponent:
		a.logger.Info("messagecomponent", "name", name)
		mc.OnMessageComponent(s, i)
	case discordgo.InteractionApplicationCommand:
		a.logger.Info("command", "name", name)
		h.OnCommand(s, i)
	}
}

// parseMessage splits a prefixed chat message into the command name and its arguments.
func parseMessage(prefix, content string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

func (a *discordApp) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if g := a.config.GuildId(); g != "" && m.GuildID != g {
		return
	}
	name, args, ok := parseMessage(a.config.Prefix(), m.Content)
	if !ok {
		return
	}
	command, ok := a.commandHandlers[name]
	if !ok {
		return
	}
	tc, ok := command.(internal.TextCommand)
	if !ok {
		return
	}
	if !a.limiter.allow(m.Author.ID) {
		a.logger.Info("rate-limited", "name", name, "user", m.Author.ID)
		if _, err := s.ChannelMessageSendReply(m.ChannelID, "Slow down, you are sending commands too fast.", m.Reference()); err != nil {
			a.logger.Error("rate-limit-reply", "error", err)
		}
		return
	}
	a.logger.Info("text-command", "name", name)
	tc.OnMessage(s, m, args)
}

func (a *discordApp) error(s *discordgo.Session, i *discordgo.Interaction, msg string) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (a *discordApp) Close() {
	err := a.config.Save()
	if err != nil {
		a.logger.Error("save-config", "error", err)
	}
}
