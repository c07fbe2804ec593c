package simulation

import (
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
)

// AttributeModel maps static player attributes plus live match state to
// the scalar propensities the other models draw against. Everything in
// here is pure.
type AttributeModel struct {
	params Params
}

func NewAttributeModel(params Params) *AttributeModel {
	return &AttributeModel{params: params}
}

// FoulWeight grows with aggression, with lost composure, with how far
// the player's energy has dropped, with bookings already held, and with
// match lateness. Never negative.
func (m *AttributeModel) FoulWeight(p player.Player, energy float64, bookings, minute int) float64 {
	fatigue := (100 - energy) / 100
	lateness := float64(minute) / 90

	w := m.params.FoulAggressionCoeff*float64(p.Attributes.Aggression)/100 +
		m.params.FoulComposureCoeff*float64(100-p.Attributes.Composure)/100 +
		m.params.FoulFatigueCoeff*fatigue +
		m.params.FoulBookingCoeff*float64(bookings) +
		m.params.FoulLatenessCoeff*lateness
	if w < 0 {
		return 0
	}
	return w
}

// FinishingQuality scales finishing and composure by remaining energy.
// Goalkeepers shoot essentially never.
func (m *AttributeModel) FinishingQuality(p player.Player, energy float64) float64 {
	if p.Position == player.PositionGoalkeeper {
		return 0.01
	}
	base := 0.7*float64(p.Attributes.Finishing) + 0.3*float64(p.Attributes.Composure)
	positional := map[player.Position]float64{
		player.PositionDefender:   0.35,
		player.PositionMidfielder: 0.75,
		player.PositionAttacker:   1.0,
	}[p.Position]

	return base / 100 * positional * (0.5 + energy/200)
}

// CompositeAbility is the 0-100 scalar the tactical substitution rule
// compares bench and pitch players on.
func (m *AttributeModel) CompositeAbility(p player.Player) float64 {
	a := p.Attributes
	switch p.Position {
	case player.PositionGoalkeeper:
		return 0.6*float64(a.Defending) + 0.4*float64(a.Composure)
	case player.PositionDefender:
		return 0.6*float64(a.Defending) + 0.25*float64(a.Technical) + 0.15*float64(a.Composure)
	case player.PositionAttacker:
		return 0.55*float64(a.Finishing) + 0.3*float64(a.Technical) + 0.15*float64(a.Composure)
	default:
		return 0.45*float64(a.Technical) + 0.3*float64(a.Defending) + 0.25*float64(a.Finishing)
	}
}

// TeamStrength averages composite ability over the players still on the
// pitch, discounted by their live energy. Used for possession swings
// and conversion difficulty.
func (m *AttributeModel) TeamStrength(t *match.TeamState, roster map[string]player.Player) float64 {
	var total float64
	var n int
	for _, id := range t.Lineup {
		if t.SentOff[id] {
			continue
		}
		p, ok := roster[id]
		if !ok {
			continue
		}
		total += m.CompositeAbility(p) * (0.5 + t.Energy[id]/200)
		n++
	}
	if n == 0 {
		return 1
	}
	return total / float64(n)
}
