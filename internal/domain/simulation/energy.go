package simulation

import (
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/tactics"
)

// EnergyModel computes live energy as a pure function of minutes
// played, so replays and partial advances always agree.
type EnergyModel struct {
	params Params
}

func NewEnergyModel(params Params) *EnergyModel {
	return &EnergyModel{params: params}
}

// Decay returns the player's energy after the given minutes on the
// pitch. Stamina slows the drain; an attacking posture drains attackers
// faster and a defensive posture drains defenders faster. Clamped to
// [0,100] and non-increasing in minutes.
func (m *EnergyModel) Decay(p player.Player, minutesPlayed int, posture tactics.Posture) float64 {
	if minutesPlayed <= 0 {
		return clampEnergy(p.BaselineEnergy)
	}

	perMinute := m.params.EnergyBaseDecay *
		(1 - m.params.EnergyStaminaScale*float64(p.Attributes.Stamina)/100) *
		m.postureDrain(p.Position, posture)
	if perMinute < 0 {
		perMinute = 0
	}

	return clampEnergy(clampEnergy(p.BaselineEnergy) - perMinute*float64(minutesPlayed))
}

func (m *EnergyModel) postureDrain(pos player.Position, posture tactics.Posture) float64 {
	switch {
	case posture == tactics.PostureAttacking && pos == player.PositionAttacker:
		return 1 + m.params.PostureDrainBonus
	case posture == tactics.PostureDefensive && pos == player.PositionDefender:
		return 1 + m.params.PostureDrainBonus
	default:
		return 1
	}
}
