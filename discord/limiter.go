package discord

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiter throttles text commands per user.
type limiter struct {
	limit rate.Limit
	burst int
	// idle is the time after which a user's bucket is full again and can be dropped.
	idle time.Duration
	now  func() time.Time

	mu     sync.Mutex
	users  map[string]*user
	pruned time.Time
}

type user struct {
	lim  *rate.Limiter
	seen time.Time
}

func newLimiter(perMinute, burst int) *limiter {
	every := time.Minute / time.Duration(perMinute)
	idle := every * time.Duration(burst)
	if idle < time.Minute {
		idle = time.Minute
	}
	return &limiter{
		limit: rate.Every(every),
		burst: burst,
		idle:  idle,
		now:   time.Now,
		users: map[string]*user{},
	}
}

func (l *limiter) allow(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.pruned) >= l.idle {
		l.prune(now)
	}
	u, ok := l.users[id]
	if !ok {
		u = &user{lim: rate.NewLimiter(l.limit, l.burst)}
		l.users[id] = u
	}
	u.seen = now
	return u.lim.AllowN(now, 1)
}

func (l *limiter) prune(now time.Time) {
	for id, u := range l.users {
		if now.Sub(u.seen) >= l.idle {
			delete(l.users, id)
		}
	}
	l.pruned = now
}

func (l *limiter) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.users)
}
