package player

import (
	"errors"
	"fmt"
)

var ErrInvalidPlayer = errors.New("invalid player")

// Position represents on-pitch position categories used by the match engine.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionAttacker   Position = "ATT"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionAttacker:   {},
}

// Attributes are the fixed ratings a player carries into a match,
// each on a 0-100 scale.
type Attributes struct {
	Aggression int
	Composure  int
	Stamina    int
	Technical  int
	Finishing  int
	Defending  int
}

// Player is a roster member. Immutable during a match; live energy and
// bookings are tracked separately on the match state.
type Player struct {
	ID             string
	TeamID         string
	FirstName      string
	LastName       string
	Position       Position
	Attributes     Attributes
	BaselineEnergy float64
}

func (p Player) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPlayer)
	}
	if p.TeamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidPlayer)
	}
	if p.LastName == "" {
		return fmt.Errorf("%w: last name is required", ErrInvalidPlayer)
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("%w: unknown position %s", ErrInvalidPlayer, p.Position)
	}
	if p.BaselineEnergy < 0 || p.BaselineEnergy > 100 {
		return fmt.Errorf("%w: baseline energy must be within [0,100]: %f", ErrInvalidPlayer, p.BaselineEnergy)
	}
	for _, attr := range []struct {
		name  string
		value int
	}{
		{"aggression", p.Attributes.Aggression},
		{"composure", p.Attributes.Composure},
		{"stamina", p.Attributes.Stamina},
		{"technical", p.Attributes.Technical},
		{"finishing", p.Attributes.Finishing},
		{"defending", p.Attributes.Defending},
	} {
		if attr.value < 0 || attr.value > 100 {
			return fmt.Errorf("%w: attribute %s must be within [0,100]: %d", ErrInvalidPlayer, attr.name, attr.value)
		}
	}

	return nil
}
