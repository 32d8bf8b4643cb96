package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdle is how long a game's limiter is kept after its last move.
const limiterIdle = time.Minute

type gameLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// moveLimiter rate limits moves per game id.
type moveLimiter struct {
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	games  map[string]*gameLimiter
	pruned time.Time
}

func newMoveLimiter(limit rate.Limit, burst int) *moveLimiter {
	return &moveLimiter{
		limit: limit,
		burst: burst,
		games: map[string]*gameLimiter{},
	}
}

// Allow reports whether a move for the game may happen now.
func (m *moveLimiter) Allow(id string) bool {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.pruned) > limiterIdle {
		for key, g := range m.games {
			if now.Sub(g.seen) > limiterIdle {
				delete(m.games, key)
			}
		}
		m.pruned = now
	}

	g, ok := m.games[id]
	if !ok {
		g = &gameLimiter{lim: rate.NewLimiter(m.limit, m.burst)}
		m.games[id] = g
	}
	g.seen = now
	return g.lim.AllowN(now, 1)
}
