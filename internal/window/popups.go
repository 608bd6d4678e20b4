package window

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Popups holds alternative modals of which one is shown at a time.
type Popups struct {
	patterns []*discordgo.InteractionResponseData
	current  int
}

func NewPopups(patterns ...*discordgo.InteractionResponseData) *Popups {
	return &Popups{patterns: patterns}
}

func (p *Popups) SetPattern(index int) error {
	if index < 0 || index >= len(p.patterns) {
		return fmt.Errorf("popup pattern %d of %d: %w", index, len(p.patterns), ErrPageOutOfRange)
	}
	p.current = index
	return nil
}

func (p *Popups) Modal() *discordgo.InteractionResponseData {
	if len(p.patterns) == 0 {
		return nil
	}
	return p.patterns[p.current]
}

// Respond opens the current modal as the response to i.
func (p *Popups) Respond(ctx context.Context, s Session, i *discordgo.Interaction) error {
	m := p.Modal()
	if m == nil {
		return fmt.Errorf("popups: no modal")
	}
	return s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: m,
	}, discordgo.WithContext(ctx))
}
