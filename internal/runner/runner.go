package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Runner is an interactive session started by a command.
type Runner interface {
	Run(ctx context.Context, i *discordgo.Interaction) error
	Destroy(ctx context.Context) error
}

type entry struct {
	owner     string
	runner    Runner
	remaining time.Duration
}

// Pool keeps the runners of one command alive until their countdown runs out.
type Pool struct {
	logger          *slog.Logger
	timeout         time.Duration
	allowDuplicated bool

	mu      sync.Mutex
	entries []*entry
}

func NewPool(l *slog.Logger, timeout time.Duration, allowDuplicated bool) *Pool {
	return &Pool{
		logger:          l,
		timeout:         timeout,
		allowDuplicated: allowDuplicated,
	}
}

// Start runs r for interaction i and registers it under owner. Unless duplicates are
// allowed, a runner the owner already has is destroyed first.
func (p *Pool) Start(ctx context.Context, owner string, r Runner, i *discordgo.Interaction) error {
	if !p.allowDuplicated {
		for _, old := range p.take(func(e *entry) bool { return e.owner == owner }) {
			if err := old.runner.Destroy(ctx); err != nil {
				p.logger.Error("destroy-runner", "owner", owner, "error", err)
			}
		}
	}
	if err := r.Run(ctx, i); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, &entry{owner: owner, runner: r, remaining: p.timeout})
	return nil
}

func (p *Pool) take(match func(e *entry) bool) (taken []*entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.entries[:0]
	for _, e := range p.entries {
		if match(e) {
			taken = append(taken, e)
		} else {
			kept = append(kept, e)
		}
	}
	for n := len(kept); n < len(p.entries); n++ {
		p.entries[n] = nil
	}
	p.entries = kept
	return
}

// Sweep counts every runner down by step and destroys the ones that reached zero. It
// returns the number of evicted runners.
func (p *Pool) Sweep(ctx context.Context, step time.Duration) int {
	expired := p.take(func(e *entry) bool {
		e.remaining -= step
		return e.remaining <= 0
	})
	for _, e := range expired {
		p.logger.Debug("runner-timeout", "owner", e.owner)
		if err := e.runner.Destroy(ctx); err != nil {
			p.logger.Error("destroy-runner", "owner", e.owner, "error", err)
		}
	}
	return len(expired)
}

// Find returns the first runner match accepts.
func (p *Pool) Find(match func(r Runner) bool) Runner {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries {
		if match(e.runner) {
			return e.runner
		}
	}
	return nil
}

// Touch restarts the countdown of r.
func (p *Pool) Touch(r Runner) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.entries {
		if e.runner == r {
			e.remaining = p.timeout
		}
	}
}

func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Close destroys all runners.
func (p *Pool) Close(ctx context.Context) {
	for _, e := range p.take(func(*entry) bool { return true }) {
		if err := e.runner.Destroy(ctx); err != nil {
			p.logger.Error("destroy-runner", "owner", e.owner, "error", err)
		}
	}
}
