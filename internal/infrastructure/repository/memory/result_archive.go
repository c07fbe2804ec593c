package memory

import (
	"context"
	"sync"

	"github.com/veller/retrofoot-sub002/internal/domain/match"
)

type ResultArchive struct {
	mu      sync.RWMutex
	results []match.Result
	events  map[string][]match.Event
}

func NewResultArchive() *ResultArchive {
	return &ResultArchive{events: make(map[string][]match.Event)}
}

func (r *ResultArchive) SaveResult(_ context.Context, result match.Result, events []match.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.results {
		if existing.MatchID == result.MatchID {
			r.results[i] = result
			r.events[result.MatchID] = append([]match.Event(nil), events...)
			return nil
		}
	}

	r.results = append(r.results, result)
	r.events[result.MatchID] = append([]match.Event(nil), events...)
	return nil
}

func (r *ResultArchive) ListResults(_ context.Context) ([]match.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Result, 0, len(r.results))
	out = append(out, r.results...)
	return out, nil
}

func (r *ResultArchive) ListEvents(_ context.Context, matchID string) ([]match.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[matchID]
	out := make([]match.Event, 0, len(events))
	out = append(out, events...)
	return out, nil
}
