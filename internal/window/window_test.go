package window_test

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/floriansw/discord-command-utils/internal/window"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Window", func() {
	var (
		ctx context.Context
		s   *fakeSession
		i   *discordgo.Interaction
		w   window.Window
	)

	BeforeEach(func() {
		ctx = context.Background()
		s = &fakeSession{}
		i = &discordgo.Interaction{ID: "1", ChannelID: "c"}
		w = window.Window{
			Content:        "hello",
			Embeds:         []*discordgo.MessageEmbed{{Title: "t"}},
			SuppressEmbeds: true,
			Ephemeral:      true,
			TTS:            true,
		}
	})

	Describe("Send", func() {
		It("sends a message to the channel", func() {
			m, err := w.Send(ctx, s, "c")
			Expect(err).ToNot(HaveOccurred())
			Expect(m.ChannelID).To(Equal("c"))
			Expect(s.sentTo).To(Equal([]string{"c"}))
			Expect(s.sent[0].Content).To(Equal("hello"))
			Expect(s.sent[0].TTS).To(BeTrue())
			Expect(s.sent[0].Embeds).To(HaveLen(1))
			Expect(s.sent[0].Flags).To(Equal(discordgo.MessageFlagsSuppressEmbeds))
		})

		It("marks silent messages", func() {
			w = window.Window{Content: "psst", Silent: true}
			_, err := w.Send(ctx, s, "c")
			Expect(err).ToNot(HaveOccurred())
			Expect(s.sent[0].Flags).To(Equal(discordgo.MessageFlagsSuppressNotifications))
		})

		It("adds reactions in order", func() {
			w.Emojis = []string{"👍", "👎"}
			_, err := w.Send(ctx, s, "c")
			Expect(err).ToNot(HaveOccurred())
			Expect(s.reactions).To(Equal([]reaction{{"c", "sent", "👍"}, {"c", "sent", "👎"}}))
		})

		It("deletes the message after the configured delay", func() {
			w.DeleteAfter = 10 * time.Millisecond
			_, err := w.Send(ctx, s, "c")
			Expect(err).ToNot(HaveOccurred())
			Eventually(s.deletedMessages).Should(Equal([]string{"c/sent"}))
		})
	})

	Describe("Reply", func() {
		It("references the replied message", func() {
			mention := false
			w.MentionAuthor = &mention
			_, err := w.Reply(ctx, s, &discordgo.Message{ID: "m", ChannelID: "c", GuildID: "g"})
			Expect(err).ToNot(HaveOccurred())
			Expect(s.sent[0].Reference.MessageID).To(Equal("m"))
			Expect(s.sent[0].Reference.ChannelID).To(Equal("c"))
			Expect(s.sent[0].AllowedMentions.RepliedUser).To(BeFalse())
		})
	})

	Describe("Edit", func() {
		It("only sets given fields", func() {
			w = window.Window{Embeds: []*discordgo.MessageEmbed{{Title: "t"}}}
			_, err := w.Edit(ctx, s, &discordgo.Message{ID: "m", ChannelID: "c"})
			Expect(err).ToNot(HaveOccurred())
			e := s.edits[0]
			Expect(e.ID).To(Equal("m"))
			Expect(e.Channel).To(Equal("c"))
			Expect(e.Content).To(BeNil())
			Expect(e.Components).To(BeNil())
			Expect(*e.Embeds).To(HaveLen(1))
		})
	})

	Describe("Respond", func() {
		It("creates an ephemeral interaction response", func() {
			m, err := w.Respond(ctx, s, i)
			Expect(err).ToNot(HaveOccurred())
			Expect(m.ID).To(Equal("response-1"))
			r := s.responses[0]
			Expect(r.Type).To(Equal(discordgo.InteractionResponseChannelMessageWithSource))
			Expect(r.Data.Content).To(Equal("hello"))
			Expect(r.Data.TTS).To(BeTrue())
			Expect(r.Data.Flags & discordgo.MessageFlagsEphemeral).ToNot(BeZero())
		})

		It("returns the respond error", func() {
			s.respondErr = errors.New("boom")
			_, err := w.Respond(ctx, s, i)
			Expect(err).To(MatchError("boom"))
		})
	})

	Describe("RespondEdit", func() {
		It("updates the component message", func() {
			_, err := w.RespondEdit(ctx, s, i)
			Expect(err).ToNot(HaveOccurred())
			r := s.responses[0]
			Expect(r.Type).To(Equal(discordgo.InteractionResponseUpdateMessage))
			Expect(r.Data.Content).To(Equal("hello"))
			Expect(r.Data.TTS).To(BeFalse())
			Expect(r.Data.Flags).To(BeZero())
		})
	})

	It("rejects a nil target", func() {
		_, err := w.Deliver(ctx, s, nil)
		Expect(err).To(HaveOccurred())
	})

	It("clones without sharing slices", func() {
		c := w.Clone()
		c.Embeds[0] = &discordgo.MessageEmbed{Title: "other"}
		c.Embeds = append(c.Embeds, &discordgo.MessageEmbed{})
		Expect(w.Embeds).To(HaveLen(1))
		Expect(w.Embeds[0].Title).To(Equal("t"))
	})
})

var _ = Describe("Windows", func() {
	It("runs once and deletes its response", func() {
		ctx := context.Background()
		s := &fakeSession{}
		i := &discordgo.Interaction{ID: "1"}
		w := window.NewWindows(s, window.Window{Content: "x"})

		Expect(w.Destroy(ctx)).To(Succeed())
		Expect(s.respDel).To(BeEmpty())

		Expect(w.Run(ctx, i)).To(Succeed())
		Expect(w.Message().ID).To(Equal("response-1"))
		Expect(w.Run(ctx, i)).To(MatchError(window.ErrDuplicatedSend))

		Expect(w.Destroy(ctx)).To(Succeed())
		Expect(s.respDel).To(Equal([]string{"1"}))
	})
})

var _ = Describe("Popups", func() {
	It("responds with the selected modal", func() {
		s := &fakeSession{}
		p := window.NewPopups(
			&discordgo.InteractionResponseData{CustomID: "a"},
			&discordgo.InteractionResponseData{CustomID: "b"},
		)
		Expect(p.SetPattern(2)).To(MatchError(window.ErrPageOutOfRange))
		Expect(p.SetPattern(1)).To(Succeed())
		Expect(p.Respond(context.Background(), s, &discordgo.Interaction{})).To(Succeed())
		Expect(s.responses[0].Type).To(Equal(discordgo.InteractionResponseModal))
		Expect(s.responses[0].Data.CustomID).To(Equal("b"))
	})

	It("fails without patterns", func() {
		Expect(window.NewPopups().Respond(context.Background(), &fakeSession{}, &discordgo.Interaction{})).ToNot(Succeed())
	})
})
