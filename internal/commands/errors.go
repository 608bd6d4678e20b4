package commands

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/floriansw/discord-command-utils/internal/commandparser"
	"github.com/floriansw/discord-command-utils/internal/window"
)

const colorRed = 0xe74c3c

// ErrorWindow renders err as an ephemeral embed naming the offending argument.
func ErrorWindow(err error, usage string) window.Window {
	embed := &discordgo.MessageEmbed{
		Title:       "Error",
		Description: describe(err),
		Color:       colorRed,
	}
	var ie *commandparser.InputError
	if errors.As(err, &ie) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Argument", Value: ie.Name})
	}
	if usage != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Usage", Value: "`" + usage + "`"})
	}
	return window.Window{
		Embeds:    []*discordgo.MessageEmbed{embed},
		Ephemeral: true,
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, commandparser.ErrDuplicatedArgument):
		return "The same argument was given more than once."
	case errors.Is(err, commandparser.ErrInvalidArgumentName):
		return "An unknown argument was given."
	case errors.Is(err, commandparser.ErrInsufficientRequiredArgument):
		return "A required argument is missing."
	case errors.Is(err, commandparser.ErrSyntax):
		return "The arguments could not be read."
	case errors.Is(err, ErrUnknownCommand):
		return "There is no such command."
	case errors.Is(err, window.ErrPageOutOfRange):
		return "There is no such page."
	}
	return "Something went wrong."
}
