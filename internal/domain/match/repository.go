package match

import "context"

// Repository stores live and terminal match snapshots.
type Repository interface {
	Save(ctx context.Context, state *State) error
	Get(ctx context.Context, matchID string) (*State, bool, error)
	List(ctx context.Context) ([]*State, error)
}
