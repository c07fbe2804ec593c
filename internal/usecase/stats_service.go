package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/iter"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/season"
	"github.com/veller/retrofoot-sub002/internal/platform/cache"
)

// StatsService derives season aggregates from finished matches. Results
// are cached with a TTL; staleness after new matches is bounded by that
// TTL rather than by explicit invalidation.
type StatsService struct {
	matchRepo  match.Repository
	rosterRepo player.Repository
	archive    match.ResultArchive
	cache      *cache.Store
}

func NewStatsService(
	matchRepo match.Repository,
	rosterRepo player.Repository,
	archive match.ResultArchive,
	store *cache.Store,
) *StatsService {
	return &StatsService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		archive:    archive,
		cache:      store,
	}
}

type PlayerSeason struct {
	Player player.Player      `json:"player"`
	Stats  season.PlayerStats `json:"stats"`
}

// PlayerSeasonStats returns the season totals for one player across
// all finished matches.
func (s *StatsService) PlayerSeasonStats(ctx context.Context, playerID string) (PlayerSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerSeasonStats")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerSeason{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, ok, err := s.rosterRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerSeason{}, fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return PlayerSeason{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	totals, err := s.seasonTotals(ctx)
	if err != nil {
		return PlayerSeason{}, err
	}
	stats := totals[playerID]
	stats.PlayerID = playerID
	return PlayerSeason{Player: p, Stats: stats}, nil
}

// TopScorers returns up to limit players ordered by goals, then
// assists, then fewest minutes, then id.
func (s *StatsService) TopScorers(ctx context.Context, limit int) ([]season.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TopScorers")
	defer span.End()

	if limit <= 0 {
		limit = 10
	}
	totals, err := s.seasonTotals(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]season.PlayerStats, 0, len(totals))
	for _, stats := range totals {
		if stats.Goals > 0 || stats.Assists > 0 {
			rows = append(rows, stats)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Goals != rows[j].Goals {
			return rows[i].Goals > rows[j].Goals
		}
		if rows[i].Assists != rows[j].Assists {
			return rows[i].Assists > rows[j].Assists
		}
		if rows[i].MinutesPlayed != rows[j].MinutesPlayed {
			return rows[i].MinutesPlayed < rows[j].MinutesPlayed
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *StatsService) seasonTotals(ctx context.Context) (map[string]season.PlayerStats, error) {
	load := func(ctx context.Context) (any, error) {
		states, err := s.matchRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list matches: %w", err)
		}

		// Fold each match on its own, then merge. Per-match folds are
		// independent, so they run concurrently.
		partials := iter.Map(states, func(state **match.State) map[string]season.PlayerStats {
			part := make(map[string]season.PlayerStats)
			season.Accumulate(part, *state)
			return part
		})

		totals := make(map[string]season.PlayerStats)
		for _, part := range partials {
			for id, stats := range part {
				merged := totals[id]
				merged.PlayerID = id
				merged.Appearances += stats.Appearances
				merged.MinutesPlayed += stats.MinutesPlayed
				merged.Goals += stats.Goals
				merged.Assists += stats.Assists
				merged.YellowCards += stats.YellowCards
				merged.RedCards += stats.RedCards
				totals[id] = merged
			}
		}
		return totals, nil
	}

	if s.cache == nil {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return v.(map[string]season.PlayerStats), nil
	}
	v, err := s.cache.GetOrLoad(ctx, "stats:season-totals", load)
	if err != nil {
		return nil, err
	}
	totals, _ := v.(map[string]season.PlayerStats)
	return totals, nil
}

type StandingRow struct {
	TeamID       string `json:"team_id"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
}

func (r StandingRow) GoalDifference() int { return r.GoalsFor - r.GoalsAgainst }

// Standings builds a league table from archived results. Points are
// three for a win and one for a draw. Ordering: points, goal
// difference, goals for, team id.
func (s *StatsService) Standings(ctx context.Context) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Standings")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		results, err := s.archive.ListResults(ctx)
		if err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}

		table := make(map[string]*StandingRow)
		row := func(teamID string) *StandingRow {
			r, ok := table[teamID]
			if !ok {
				r = &StandingRow{TeamID: teamID}
				table[teamID] = r
			}
			return r
		}
		for _, result := range results {
			home := row(result.HomeTeamID)
			away := row(result.AwayTeamID)

			home.Played++
			away.Played++
			home.GoalsFor += result.HomeScore
			home.GoalsAgainst += result.AwayScore
			away.GoalsFor += result.AwayScore
			away.GoalsAgainst += result.HomeScore

			switch {
			case result.HomeScore > result.AwayScore:
				home.Won++
				home.Points += 3
				away.Lost++
			case result.HomeScore < result.AwayScore:
				away.Won++
				away.Points += 3
				home.Lost++
			default:
				home.Drawn++
				away.Drawn++
				home.Points++
				away.Points++
			}
		}

		rows := make([]StandingRow, 0, len(table))
		for _, r := range table {
			rows = append(rows, *r)
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Points != rows[j].Points {
				return rows[i].Points > rows[j].Points
			}
			if rows[i].GoalDifference() != rows[j].GoalDifference() {
				return rows[i].GoalDifference() > rows[j].GoalDifference()
			}
			if rows[i].GoalsFor != rows[j].GoalsFor {
				return rows[i].GoalsFor > rows[j].GoalsFor
			}
			return rows[i].TeamID < rows[j].TeamID
		})
		return rows, nil
	}

	if s.cache == nil {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return v.([]StandingRow), nil
	}
	v, err := s.cache.GetOrLoad(ctx, "stats:standings", load)
	if err != nil {
		return nil, err
	}
	rows, _ := v.([]StandingRow)
	return append([]StandingRow(nil), rows...), nil
}
