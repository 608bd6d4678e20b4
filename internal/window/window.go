package window

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Window describes a message independent of how it is produced. The zero value of each
// field means "not set".
type Window struct {
	Content         string
	TTS             bool
	Embeds          []*discordgo.MessageEmbed
	Files           []*discordgo.File
	StickerIDs      []string
	AllowedMentions *discordgo.MessageAllowedMentions
	// MentionAuthor controls whether a Reply pings the author of the referenced message.
	MentionAuthor  *bool
	Components     []discordgo.MessageComponent
	SuppressEmbeds bool
	// Silent suppresses push and desktop notifications.
	Silent    bool
	Ephemeral bool
	// Emojis are added as reactions once the message exists.
	Emojis      []string
	DeleteAfter time.Duration

	// Logger receives errors of deferred deletions. Defaults to slog.Default().
	Logger *slog.Logger
}

// Clone returns a copy that does not share slices with w.
func (w Window) Clone() Window {
	c := w
	c.Embeds = append([]*discordgo.MessageEmbed(nil), w.Embeds...)
	c.Files = append([]*discordgo.File(nil), w.Files...)
	c.StickerIDs = append([]string(nil), w.StickerIDs...)
	c.Components = append([]discordgo.MessageComponent(nil), w.Components...)
	c.Emojis = append([]string(nil), w.Emojis...)
	return c
}

func (w *Window) flags(interaction bool) (f discordgo.MessageFlags) {
	if w.SuppressEmbeds {
		f |= discordgo.MessageFlagsSuppressEmbeds
	}
	if w.Silent {
		f |= discordgo.MessageFlagsSuppressNotifications
	}
	if interaction && w.Ephemeral {
		f |= discordgo.MessageFlagsEphemeral
	}
	return
}

func (w *Window) messageSend() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:         w.Content,
		TTS:             w.TTS,
		Embeds:          w.Embeds,
		Files:           w.Files,
		StickerIDs:      w.StickerIDs,
		AllowedMentions: w.AllowedMentions,
		Components:      w.Components,
		Flags:           w.flags(false),
	}
}

func (w *Window) messageEdit(channelID, messageID string) *discordgo.MessageEdit {
	e := &discordgo.MessageEdit{
		ID:              messageID,
		Channel:         channelID,
		AllowedMentions: w.AllowedMentions,
		Files:           w.Files,
		Flags:           w.flags(false),
	}
	if w.Content != "" {
		e.Content = &w.Content
	}
	if w.Embeds != nil {
		e.Embeds = &w.Embeds
	}
	if w.Components != nil {
		e.Components = &w.Components
	}
	return e
}

// interactionData builds the response payload. TTS and flags only apply to new messages.
func (w *Window) interactionData(create bool) *discordgo.InteractionResponseData {
	d := &discordgo.InteractionResponseData{
		Content:         w.Content,
		Embeds:          w.Embeds,
		Files:           w.Files,
		AllowedMentions: w.AllowedMentions,
		Components:      w.Components,
	}
	if create {
		d.TTS = w.TTS
		d.Flags = w.flags(true)
	}
	return d
}

func (w *Window) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// Deliver produces the window at t. Reactions are added after the message exists and a
// deletion is scheduled when DeleteAfter is set.
func (w Window) Deliver(ctx context.Context, s Session, t Target) (*discordgo.Message, error) {
	if t == nil {
		return nil, errors.New("window: nil target")
	}
	m, err := t.deliver(ctx, s, &w)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	for _, e := range w.Emojis {
		if err := s.MessageReactionAdd(m.ChannelID, m.ID, e, discordgo.WithContext(ctx)); err != nil {
			return m, fmt.Errorf("add reaction %s: %w", e, err)
		}
	}
	if w.DeleteAfter > 0 {
		l := w.logger()
		time.AfterFunc(w.DeleteAfter, func() {
			if err := t.remove(context.Background(), s, m); err != nil {
				l.Error("delete-after", "message", m.ID, "error", err)
			}
		})
	}
	return m, nil
}

func (w Window) Send(ctx context.Context, s Session, channelID string) (*discordgo.Message, error) {
	return w.Deliver(ctx, s, Channel{ID: channelID})
}

func (w Window) Reply(ctx context.Context, s Session, m *discordgo.Message) (*discordgo.Message, error) {
	return w.Deliver(ctx, s, Reply{Message: m})
}

func (w Window) Respond(ctx context.Context, s Session, i *discordgo.Interaction) (*discordgo.Message, error) {
	return w.Deliver(ctx, s, Respond{Interaction: i})
}

func (w Window) Edit(ctx context.Context, s Session, m *discordgo.Message) (*discordgo.Message, error) {
	return w.Deliver(ctx, s, Edit{Message: m})
}

func (w Window) RespondEdit(ctx context.Context, s Session, i *discordgo.Interaction) (*discordgo.Message, error) {
	return w.Deliver(ctx, s, RespondEdit{Interaction: i})
}
