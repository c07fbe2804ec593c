package match

import (
	"context"
	"time"
)

// Result is the flattened terminal outcome kept for season history.
type Result struct {
	MatchID    string
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
	Seed       int64
	PlayedAt   time.Time
}

// ResultArchive persists terminal outcomes together with their event
// logs. Live states never reach the archive.
type ResultArchive interface {
	SaveResult(ctx context.Context, result Result, events []Event) error
	ListResults(ctx context.Context) ([]Result, error)
	ListEvents(ctx context.Context, matchID string) ([]Event, error)
}
