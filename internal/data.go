package internal

import (
	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Definition(cmd string) *discordgo.ApplicationCommand
	OnCommand(s *discordgo.Session, i *discordgo.InteractionCreate)
}

// TextCommand is a command that can also be invoked by a prefixed chat message.
type TextCommand interface {
	OnMessage(s *discordgo.Session, m *discordgo.MessageCreate, args []string)
}

type Autocomplete interface {
	OnAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate)
}

type ModalSubmit interface {
	CanHandle(customId string) bool
	OnModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate)
}

type MessageComponent interface {
	CanHandle(customId string) bool
	OnMessageComponent(s *discordgo.Session, i *discordgo.InteractionCreate)
}
