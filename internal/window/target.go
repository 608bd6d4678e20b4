package window

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Target is where a window is delivered to. It is one of Channel, Reply, Respond, Edit
// or RespondEdit.
type Target interface {
	deliver(ctx context.Context, s Session, w *Window) (*discordgo.Message, error)
	remove(ctx context.Context, s Session, m *discordgo.Message) error
}

// Channel sends a new message to a channel.
type Channel struct {
	ID string
}

// Reply sends a new message referencing Message.
type Reply struct {
	Message *discordgo.Message
}

// Respond answers an interaction with a new message.
type Respond struct {
	Interaction *discordgo.Interaction
}

// Edit replaces the content of Message.
type Edit struct {
	Message *discordgo.Message
}

// RespondEdit answers a component interaction by updating the message it is attached to.
type RespondEdit struct {
	Interaction *discordgo.Interaction
}

func (t Channel) deliver(ctx context.Context, s Session, w *Window) (*discordgo.Message, error) {
	return s.ChannelMessageSendComplex(t.ID, w.messageSend(), discordgo.WithContext(ctx))
}

func (t Reply) deliver(ctx context.Context, s Session, w *Window) (*discordgo.Message, error) {
	data := w.messageSend()
	data.Reference = t.Message.Reference()
	if w.MentionAuthor != nil {
		if data.AllowedMentions == nil {
			data.AllowedMentions = &discordgo.MessageAllowedMentions{
				Parse: []discordgo.AllowedMentionType{
					discordgo.AllowedMentionTypeUsers,
					discordgo.AllowedMentionTypeRoles,
					discordgo.AllowedMentionTypeEveryone,
				},
			}
		}
		data.AllowedMentions.RepliedUser = *w.MentionAuthor
	}
	return s.ChannelMessageSendComplex(t.Message.ChannelID, data, discordgo.WithContext(ctx))
}

func (t Respond) deliver(ctx context.Context, s Session, w *Window) (*discordgo.Message, error) {
	err := s.InteractionRespond(t.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: w.interactionData(true),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return s.InteractionResponse(t.Interaction, discordgo.WithContext(ctx))
}

func (t Edit) deliver(ctx context.Context, s Session, w *Window) (*discordgo.Message, error) {
	return s.ChannelMessageEditComplex(w.messageEdit(t.Message.ChannelID, t.Message.ID), discordgo.WithContext(ctx))
}

func (t RespondEdit) deliver(ctx context.Context, s Session, w *Window) (*discordgo.Message, error) {
	err := s.InteractionRespond(t.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: w.interactionData(false),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return s.InteractionResponse(t.Interaction, discordgo.WithContext(ctx))
}

func deleteMessage(ctx context.Context, s Session, m *discordgo.Message) error {
	return s.ChannelMessageDelete(m.ChannelID, m.ID, discordgo.WithContext(ctx))
}

func (Channel) remove(ctx context.Context, s Session, m *discordgo.Message) error {
	return deleteMessage(ctx, s, m)
}

func (Reply) remove(ctx context.Context, s Session, m *discordgo.Message) error {
	return deleteMessage(ctx, s, m)
}

func (Edit) remove(ctx context.Context, s Session, m *discordgo.Message) error {
	return deleteMessage(ctx, s, m)
}

func (t Respond) remove(ctx context.Context, s Session, _ *discordgo.Message) error {
	return s.InteractionResponseDelete(t.Interaction, discordgo.WithContext(ctx))
}

func (t RespondEdit) remove(ctx context.Context, s Session, _ *discordgo.Message) error {
	return s.InteractionResponseDelete(t.Interaction, discordgo.WithContext(ctx))
}
