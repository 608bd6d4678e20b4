package runner

import (
	"context"
	"log/slog"
	"time"
)

const DefaultInterval = 3 * time.Minute

type sweeper struct {
	logger   *slog.Logger
	pools    []*Pool
	interval time.Duration

	ticker *time.Ticker
}

func NewSweeper(l *slog.Logger, pools []*Pool, d time.Duration) *sweeper {
	if d <= 0 {
		d = DefaultInterval
	}
	return &sweeper{
		logger:   l,
		pools:    pools,
		interval: d,
		ticker:   time.NewTicker(d),
	}
}

func (s *sweeper) Run(ctx context.Context) {
	go s.sweep(ctx)
}

func (s *sweeper) sweep(ctx context.Context) {
	defer s.ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.ticker.C:
			evicted := 0
			for _, p := range s.pools {
				evicted += p.Sweep(ctx, s.interval)
			}
			if evicted > 0 {
				s.logger.Info("sweep", "evicted", evicted)
			}
		}
	}
}
