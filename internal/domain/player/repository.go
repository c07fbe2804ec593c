package player

import "context"

// Repository provides read access to rosters. Rosters are immutable
// while matches run; implementations may share data freely.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
}
