package tactics

import (
	"errors"
	"fmt"

	"github.com/veller/retrofoot-sub002/internal/domain/player"
)

var (
	ErrInvalidLineupSize   = errors.New("lineup must contain exactly 11 players")
	ErrGoalkeeperCount     = errors.New("lineup must contain exactly one goalkeeper")
	ErrUnknownFormation    = errors.New("unknown formation")
	ErrUnknownPosture      = errors.New("unknown posture")
	ErrUnknownPlayer       = errors.New("player is not on the roster")
	ErrDuplicatePlayer     = errors.New("duplicate player in tactics")
	ErrFormationMismatch   = errors.New("lineup does not satisfy formation shape")
	ErrPlayerOnBothSheets  = errors.New("player listed both in lineup and on bench")
	ErrWrongTeamAssignment = errors.New("player belongs to a different team")
)

// Posture is the overall tactical attitude for the whole match.
type Posture string

const (
	PostureDefensive Posture = "defensive"
	PostureBalanced  Posture = "balanced"
	PostureAttacking Posture = "attacking"
)

var AllPostures = map[Posture]struct{}{
	PostureDefensive: {},
	PostureBalanced:  {},
	PostureAttacking: {},
}

// Formation is a named outfield shape. The goalkeeper slot is implicit.
type Formation string

const (
	Formation442  Formation = "4-4-2"
	Formation433  Formation = "4-3-3"
	Formation352  Formation = "3-5-2"
	Formation451  Formation = "4-5-1"
	Formation532  Formation = "5-3-2"
	Formation4231 Formation = "4-2-3-1"
)

// Shape holds the outfield position counts a formation requires.
type Shape struct {
	Defenders   int
	Midfielders int
	Attackers   int
}

var formationShapes = map[Formation]Shape{
	Formation442:  {Defenders: 4, Midfielders: 4, Attackers: 2},
	Formation433:  {Defenders: 4, Midfielders: 3, Attackers: 3},
	Formation352:  {Defenders: 3, Midfielders: 5, Attackers: 2},
	Formation451:  {Defenders: 4, Midfielders: 5, Attackers: 1},
	Formation532:  {Defenders: 5, Midfielders: 3, Attackers: 2},
	Formation4231: {Defenders: 4, Midfielders: 5, Attackers: 1},
}

func (f Formation) Shape() (Shape, bool) {
	shape, ok := formationShapes[f]
	return shape, ok
}

// Tactics fixes a team's setup for a whole match. Only the lineup and
// bench change afterwards, and only through substitution events.
type Tactics struct {
	TeamID      string
	Formation   Formation
	Posture     Posture
	Lineup      []string
	Substitutes []string
}

const LineupSize = 11

// Validate rejects malformed tactics before kickoff. The roster maps
// player id to the full player record for the owning team.
func (t Tactics) Validate(roster map[string]player.Player) error {
	if len(t.Lineup) != LineupSize {
		return fmt.Errorf("%w: got %d", ErrInvalidLineupSize, len(t.Lineup))
	}
	shape, ok := t.Formation.Shape()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFormation, t.Formation)
	}
	if _, ok := AllPostures[t.Posture]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPosture, t.Posture)
	}

	seen := make(map[string]struct{}, len(t.Lineup)+len(t.Substitutes))
	counts := make(map[player.Position]int, len(player.AllPositions))
	for _, id := range t.Lineup {
		p, ok := roster[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
		if t.TeamID != "" && p.TeamID != t.TeamID {
			return fmt.Errorf("%w: %s is registered to %s", ErrWrongTeamAssignment, id, p.TeamID)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
		counts[p.Position]++
	}

	if counts[player.PositionGoalkeeper] != 1 {
		return fmt.Errorf("%w: got %d", ErrGoalkeeperCount, counts[player.PositionGoalkeeper])
	}
	if counts[player.PositionDefender] != shape.Defenders ||
		counts[player.PositionMidfielder] != shape.Midfielders ||
		counts[player.PositionAttacker] != shape.Attackers {
		return fmt.Errorf("%w: formation=%s needs %d/%d/%d, lineup has %d/%d/%d",
			ErrFormationMismatch, t.Formation,
			shape.Defenders, shape.Midfielders, shape.Attackers,
			counts[player.PositionDefender], counts[player.PositionMidfielder], counts[player.PositionAttacker])
	}

	for _, id := range t.Substitutes {
		p, ok := roster[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
		if t.TeamID != "" && p.TeamID != t.TeamID {
			return fmt.Errorf("%w: %s is registered to %s", ErrWrongTeamAssignment, id, p.TeamID)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrPlayerOnBothSheets, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
