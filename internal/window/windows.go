package window

import (
	"context"
	"errors"
	"sync"

	"github.com/bwmarrin/discordgo"
)

var ErrDuplicatedSend = errors.New("window already sent")

// Windows is a runner showing a window as the response to the interaction it runs for.
type Windows struct {
	s Session

	mu      sync.Mutex
	window  Window
	target  Target
	message *discordgo.Message
}

func NewWindows(s Session, w Window) *Windows {
	return &Windows{s: s, window: w}
}

// Run responds to i with the window. A Windows can only be run once.
func (w *Windows) Run(ctx context.Context, i *discordgo.Interaction) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.target != nil {
		return ErrDuplicatedSend
	}
	t := Respond{Interaction: i}
	m, err := w.window.Deliver(ctx, w.s, t)
	if err != nil {
		return err
	}
	w.target = t
	w.message = m
	return nil
}

// Destroy deletes the message produced by Run, if any.
func (w *Windows) Destroy(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.target == nil {
		return nil
	}
	err := w.target.remove(ctx, w.s, w.message)
	w.message = nil
	return err
}

// Message returns the message produced by the last delivery.
func (w *Windows) Message() *discordgo.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// update shows win in response to the component interaction i. Later removals go
// through i, as the token of the previous interaction may have expired.
func (w *Windows) update(ctx context.Context, win Window, i *discordgo.Interaction) error {
	m, err := win.RespondEdit(ctx, w.s, i)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.window = win
	w.target = RespondEdit{Interaction: i}
	if m != nil {
		w.message = m
	}
	return nil
}
