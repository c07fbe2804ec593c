package memory

import (
	"context"
	"sync"

	"github.com/veller/retrofoot-sub002/internal/domain/match"
)

// MatchRepository stores live match snapshots. States are cloned both
// ways so callers can never mutate a stored snapshot.
type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]*match.State
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[string]*match.State)}
}

func (r *MatchRepository) Save(_ context.Context, state *match.State) error {
	if state == nil {
		return nil
	}

	r.mu.Lock()
	r.items[state.ID] = state.Clone()
	r.mu.Unlock()

	return nil
}

func (r *MatchRepository) Get(_ context.Context, matchID string) (*match.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.items[matchID]
	if !ok {
		return nil, false, nil
	}

	return state.Clone(), true, nil
}

func (r *MatchRepository) List(_ context.Context) ([]*match.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*match.State, 0, len(r.items))
	for _, state := range r.items {
		out = append(out, state.Clone())
	}

	return out, nil
}
