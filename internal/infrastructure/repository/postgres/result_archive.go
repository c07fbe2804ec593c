package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
)

// ResultArchive stores terminal match outcomes and their event logs.
// Saving the same match twice replaces the previous entry so that a
// repeated completion never duplicates history.
type ResultArchive struct {
	db *sqlx.DB
}

func NewResultArchive(db *sqlx.DB) *ResultArchive {
	return &ResultArchive{db: db}
}

func (r *ResultArchive) SaveResult(ctx context.Context, result match.Result, events []match.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save result tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsertResult = `
		INSERT INTO match_results (match_id, home_team_id, away_team_id, home_score, away_score, seed, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (match_id) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			played_at  = EXCLUDED.played_at`
	if _, err := tx.ExecContext(ctx, upsertResult,
		result.MatchID,
		result.HomeTeamID,
		result.AwayTeamID,
		result.HomeScore,
		result.AwayScore,
		result.Seed,
		result.PlayedAt,
	); err != nil {
		return fmt.Errorf("upsert match result: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM match_events WHERE match_id = $1`, result.MatchID); err != nil {
		return fmt.Errorf("clear match events: %w", err)
	}

	const insertEvent = `
		INSERT INTO match_events (match_id, seq, minute, event_type, side, player_id, assist_player_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, event := range events {
		if _, err := tx.ExecContext(ctx, insertEvent,
			result.MatchID,
			i,
			event.Minute,
			string(event.Type),
			string(event.Team),
			nullString(event.PlayerID),
			nullString(event.AssistPlayerID),
			nullString(event.Description),
		); err != nil {
			return fmt.Errorf("insert match event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save result tx: %w", err)
	}
	return nil
}

func (r *ResultArchive) ListResults(ctx context.Context) ([]match.Result, error) {
	const query = `
		SELECT id, match_id, home_team_id, away_team_id, home_score, away_score, seed, played_at, created_at
		FROM match_results
		ORDER BY played_at, match_id`

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select match results: %w", err)
	}

	out := make([]match.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Result{
			MatchID:    row.MatchID,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
			Seed:       row.Seed,
			PlayedAt:   row.PlayedAt,
		})
	}
	return out, nil
}

func (r *ResultArchive) ListEvents(ctx context.Context, matchID string) ([]match.Event, error) {
	const query = `
		SELECT id, match_id, seq, minute, event_type, side, player_id, assist_player_id, description
		FROM match_events
		WHERE match_id = $1
		ORDER BY seq`

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, matchID); err != nil {
		return nil, fmt.Errorf("select match events: %w", err)
	}

	out := make([]match.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Event{
			Minute:         row.Minute,
			Type:           match.EventType(row.EventType),
			Team:           match.Side(row.Side),
			PlayerID:       nullStringValue(row.PlayerID),
			AssistPlayerID: nullStringValue(row.AssistPlayerID),
			Description:    nullStringValue(row.Description),
		})
	}
	return out, nil
}
