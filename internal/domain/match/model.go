package match

import (
	"github.com/veller/retrofoot-sub002/internal/domain/tactics"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusFullTime   = "FULL_TIME"
)

// Side identifies which team an event or state fragment belongs to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func (s Side) Opponent() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// TeamState is the live, per-team half of the match state. Maps are
// keyed by player id and cover everyone on the team sheet.
type TeamState struct {
	TeamID        string
	Tactics       tactics.Tactics
	Lineup        []string
	Bench         []string
	Energy        map[string]float64
	Bookings      map[string]int
	SentOff       map[string]bool
	MinutesPlayed map[string]int
	SubsUsed      int
}

// OnPitch reports whether the player currently occupies a lineup slot
// and has not been dismissed.
func (t *TeamState) OnPitch(playerID string) bool {
	if t.SentOff[playerID] {
		return false
	}
	for _, id := range t.Lineup {
		if id == playerID {
			return true
		}
	}
	return false
}

func (t *TeamState) OnBench(playerID string) bool {
	for _, id := range t.Bench {
		if id == playerID {
			return true
		}
	}
	return false
}

// State is the full live match state. It is created at kickoff, mutated
// only by the match engine's tick loop, and becomes terminal once the
// full_time event is appended.
type State struct {
	ID         string
	Seed       int64
	Status     string
	Minute     int
	Stoppage   int
	HomeScore  int
	AwayScore  int
	Possession Side
	Home       TeamState
	Away       TeamState
	Events     []Event
}

func (s *State) Team(side Side) *TeamState {
	if side == SideAway {
		return &s.Away
	}
	return &s.Home
}

func (s *State) Score(side Side) int {
	if side == SideAway {
		return s.AwayScore
	}
	return s.HomeScore
}

// GoalDifference is positive when the given side leads.
func (s *State) GoalDifference(side Side) int {
	return s.Score(side) - s.Score(side.Opponent())
}

func (s *State) Finished() bool {
	return s.Status == StatusFullTime
}

// AppendEvent records an event. Events are append-only; nothing ever
// rewrites or reorders the log.
func (s *State) AppendEvent(e Event) {
	s.Events = append(s.Events, e)
}

// Clone returns a deep copy safe to hand to readers while the engine
// keeps ticking the original.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Home = cloneTeamState(s.Home)
	out.Away = cloneTeamState(s.Away)
	out.Events = append([]Event(nil), s.Events...)
	return &out
}

func cloneTeamState(t TeamState) TeamState {
	out := t
	out.Lineup = append([]string(nil), t.Lineup...)
	out.Bench = append([]string(nil), t.Bench...)
	out.Energy = cloneMap(t.Energy)
	out.Bookings = cloneMap(t.Bookings)
	out.SentOff = cloneMap(t.SentOff)
	out.MinutesPlayed = cloneMap(t.MinutesPlayed)
	return out
}

func cloneMap[V any](in map[string]V) map[string]V {
	if in == nil {
		return nil
	}
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
