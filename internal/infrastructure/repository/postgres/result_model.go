package postgres

import (
	"database/sql"
	"time"
)

type matchResultTableModel struct {
	ID         int64     `db:"id"`
	MatchID    string    `db:"match_id"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	Seed       int64     `db:"seed"`
	PlayedAt   time.Time `db:"played_at"`
	CreatedAt  time.Time `db:"created_at"`
}

type matchEventTableModel struct {
	ID             int64          `db:"id"`
	MatchID        string         `db:"match_id"`
	Seq            int            `db:"seq"`
	Minute         int            `db:"minute"`
	EventType      string         `db:"event_type"`
	Side           string         `db:"side"`
	PlayerID       sql.NullString `db:"player_id"`
	AssistPlayerID sql.NullString `db:"assist_player_id"`
	Description    sql.NullString `db:"description"`
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringValue(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
