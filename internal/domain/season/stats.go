package season

import (
	"github.com/veller/retrofoot-sub002/internal/domain/match"
)

// PlayerStats is a season-long accumulation for one player.
type PlayerStats struct {
	PlayerID      string `json:"playerId"`
	Appearances   int    `json:"appearances"`
	MinutesPlayed int    `json:"minutesPlayed"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellowCards"`
	RedCards      int    `json:"redCards"`
}

// Accumulate folds one finished match into the running totals. It is a
// pure function of the terminal state: replaying the same match twice
// against fresh totals yields identical numbers, and partial in-play
// states are ignored entirely.
func Accumulate(totals map[string]PlayerStats, state *match.State) {
	if state == nil || !state.Finished() {
		return
	}

	addMinutes(totals, &state.Home)
	addMinutes(totals, &state.Away)

	for _, e := range state.Events {
		switch e.Type {
		case match.EventGoal, match.EventPenaltyScored:
			bump(totals, e.PlayerID, func(s *PlayerStats) { s.Goals++ })
			if e.Type == match.EventGoal && e.AssistPlayerID != "" {
				bump(totals, e.AssistPlayerID, func(s *PlayerStats) { s.Assists++ })
			}
		case match.EventYellowCard:
			bump(totals, e.PlayerID, func(s *PlayerStats) { s.YellowCards++ })
		case match.EventRedCard:
			bump(totals, e.PlayerID, func(s *PlayerStats) { s.RedCards++ })
		}
	}
}

// Own goals credit nobody; the scoreline carries them, the scorer's
// season line does not.

func addMinutes(totals map[string]PlayerStats, t *match.TeamState) {
	for id, minutes := range t.MinutesPlayed {
		if minutes <= 0 {
			continue
		}
		bump(totals, id, func(s *PlayerStats) {
			s.Appearances++
			s.MinutesPlayed += minutes
		})
	}
}

func bump(totals map[string]PlayerStats, playerID string, fn func(*PlayerStats)) {
	if playerID == "" {
		return
	}
	s := totals[playerID]
	s.PlayerID = playerID
	fn(&s)
	totals[playerID] = s
}
