package window

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const (
	maxRows = 5

	actionPrev  = "prev"
	actionPage  = "page"
	actionNext  = "next"
	actionModal = "modal"
	pageInputID = "page-number"
)

var (
	ErrNoPages           = errors.New("no pages")
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrTooManyComponents = errors.New("too many component rows")
)

// Pages shows one of several windows and appends a navigation row to each of them.
type Pages struct {
	*Windows

	id      string
	popups  *Popups
	pages   []Window
	pagesMu sync.Mutex
	index   int
}

func NewPages(s Session, windows []Window, index int) (*Pages, error) {
	if len(windows) == 0 {
		return nil, ErrNoPages
	}
	if index < 0 || index >= len(windows) {
		return nil, fmt.Errorf("default page %d: %w", index, ErrPageOutOfRange)
	}
	p := &Pages{
		id:    "pages:" + uuid.NewString(),
		index: index,
	}
	for n, w := range windows {
		if len(w.Components) >= maxRows {
			return nil, fmt.Errorf("page %d: %w", n+1, ErrTooManyComponents)
		}
		w = w.Clone()
		w.Components = append(w.Components, p.navigation(n, len(windows)))
		p.pages = append(p.pages, w)
	}
	p.popups = NewPopups(&discordgo.InteractionResponseData{
		CustomID: p.customID(actionModal),
		Title:    "Page number",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  pageInputID,
						Label:     fmt.Sprintf("Page number (1-%d)", len(windows)),
						Style:     discordgo.TextInputShort,
						Required:  true,
						MinLength: 1,
						MaxLength: 4,
					},
				},
			},
		},
	})
	p.Windows = NewWindows(s, p.pages[index])
	return p, nil
}

func (p *Pages) customID(action string) string {
	return p.id + ":" + action
}

func (p *Pages) navigation(index, length int) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "<<",
				Style:    discordgo.SecondaryButton,
				CustomID: p.customID(actionPrev),
				Disabled: index <= 0,
			},
			discordgo.Button{
				Label:    fmt.Sprintf("%d/%d", index+1, length),
				Style:    discordgo.SecondaryButton,
				CustomID: p.customID(actionPage),
			},
			discordgo.Button{
				Label:    ">>",
				Style:    discordgo.SecondaryButton,
				CustomID: p.customID(actionNext),
				Disabled: index >= length-1,
			},
		},
	}
}

func (p *Pages) Len() int {
	return len(p.pages)
}

// Index returns the zero based index of the page currently shown.
func (p *Pages) Index() int {
	p.pagesMu.Lock()
	defer p.pagesMu.Unlock()
	return p.index
}

// Page returns the window of the zero based page index, including the navigation row.
func (p *Pages) Page(index int) Window {
	return p.pages[index]
}

// MoveTo shows the 1-based page number as the update of component interaction i.
func (p *Pages) MoveTo(ctx context.Context, i *discordgo.Interaction, page int) error {
	page--
	if page < 0 || page >= len(p.pages) {
		return fmt.Errorf("page %d of %d: %w", page+1, len(p.pages), ErrPageOutOfRange)
	}
	return p.show(ctx, i, page)
}

// MoveToSide shows the next or the previous page.
func (p *Pages) MoveToSide(ctx context.Context, i *discordgo.Interaction, next bool) error {
	target := p.Index() - 1
	if next {
		target = p.Index() + 1
	}
	if target < 0 || target >= len(p.pages) {
		return fmt.Errorf("page %d of %d: %w", target+1, len(p.pages), ErrPageOutOfRange)
	}
	return p.show(ctx, i, target)
}

func (p *Pages) show(ctx context.Context, i *discordgo.Interaction, index int) error {
	if err := p.Windows.update(ctx, p.pages[index], i); err != nil {
		return err
	}
	p.pagesMu.Lock()
	p.index = index
	p.pagesMu.Unlock()
	return nil
}

func (p *Pages) CanHandle(customID string) bool {
	return strings.HasPrefix(customID, p.id+":")
}

// HandleInteraction reacts to the navigation buttons and the page number modal.
func (p *Pages) HandleInteraction(ctx context.Context, i *discordgo.Interaction) error {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		switch strings.TrimPrefix(i.MessageComponentData().CustomID, p.id+":") {
		case actionPrev:
			return p.MoveToSide(ctx, i, false)
		case actionNext:
			return p.MoveToSide(ctx, i, true)
		case actionPage:
			return p.popups.Respond(ctx, p.Windows.s, i)
		}
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		if data.CustomID != p.customID(actionModal) {
			break
		}
		v := modalValue(data, pageInputID)
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("page number %q: %w", v, ErrPageOutOfRange)
		}
		return p.MoveTo(ctx, i, n)
	}
	return fmt.Errorf("pages: unhandled interaction %s", i.Type)
}

func modalValue(m discordgo.ModalSubmitInteractionData, fieldID string) string {
	for _, comp := range m.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok || row == nil {
			continue
		}
		for _, c := range row.Components {
			ti, ok := c.(*discordgo.TextInput)
			if ok && ti.CustomID == fieldID {
				return ti.Value
			}
		}
	}
	return ""
}
