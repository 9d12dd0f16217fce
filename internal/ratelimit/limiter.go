package ratelimit

import (
	"sync"
	"time"
)

// Window is the trailing span a ceiling applies to.
const Window = 60 * time.Second

// Limiter keeps an advisory sliding-window request count per endpoint name.
// Allow and Record stay separate calls, mirroring the check-then-act contract
// of the original callers, but each call is internally synchronized.
type Limiter struct {
	mu             sync.Mutex
	enabled        bool
	ceilings       map[string]int
	defaultCeiling int
	history        map[string][]time.Time
	now            func() time.Time
}

func New(enabled bool, defaultCeiling int, ceilings map[string]int) *Limiter {
	if ceilings == nil {
		ceilings = map[string]int{}
	}
	return &Limiter{
		enabled:        enabled,
		ceilings:       ceilings,
		defaultCeiling: defaultCeiling,
		history:        map[string][]time.Time{},
		now:            time.Now,
	}
}

// Allow prunes timestamps outside the window for the endpoint and reports
// whether another request would stay under its ceiling. A disabled limiter
// allows everything.
func (l *Limiter) Allow(endpoint string) bool {
	if !l.enabled {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.pruneLocked(endpoint)
	return len(recent) < l.ceilingFor(endpoint)
}

// Record appends the current time to the endpoint's window.
func (l *Limiter) Record(endpoint string) {
	if !l.enabled {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history[endpoint] = append(l.pruneLocked(endpoint), l.now())
}

// Remaining reports how many requests the endpoint has left in its window.
func (l *Limiter) Remaining(endpoint string) int {
	if !l.enabled {
		return l.ceilingFor(endpoint)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	left := l.ceilingFor(endpoint) - len(l.pruneLocked(endpoint))
	if left < 0 {
		return 0
	}
	return left
}

func (l *Limiter) ceilingFor(endpoint string) int {
	if c, ok := l.ceilings[endpoint]; ok {
		return c
	}
	return l.defaultCeiling
}

func (l *Limiter) pruneLocked(endpoint string) []time.Time {
	cutoff := l.now().Add(-Window)
	stamps := l.history[endpoint]
	kept := stamps[:0]
	for _, t := range stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.history[endpoint] = kept
	return kept
}
