package simulation

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid simulation params")

// Params holds every tunable the engine draws against. All
// probabilities are clamped before use, so a slightly off value skews
// the game instead of breaking a draw.
type Params struct {
	// Match structure.
	HalfLength       int
	MaxSubstitutions int
	StoppageBase     int
	StoppageSpread   int

	// Trigger roll.
	BaseTriggerChance   float64
	TriggerLateBonus    float64
	TriggerPostureBonus float64

	// Category weights, relative to each other.
	ChanceWeight        float64
	CardWeight          float64
	SetPieceWeight      float64
	SaveWeight          float64
	InjuryWeight        float64
	TrailingChanceBoost float64

	// Chance resolution.
	PenaltyChance      float64
	PenaltyConversion  float64
	OwnGoalChance      float64
	BaseConversion     float64
	ConversionSpread   float64
	SaveShareOnMiss    float64
	AssistChance       float64

	// Discipline.
	DirectRedChance     float64
	FoulAggressionCoeff float64
	FoulComposureCoeff  float64
	FoulFatigueCoeff    float64
	FoulBookingCoeff    float64
	FoulLatenessCoeff   float64

	// Substitutions.
	FatigueThreshold   float64
	FatigueBenchMargin float64
	ProtectLeadMinute  int
	ProtectLeadMargin  int
	TacticalDelta      float64

	// Energy decay.
	EnergyBaseDecay    float64
	EnergyStaminaScale float64
	PostureDrainBonus  float64
}

// DefaultParams are the shipped tunables. Tests pin behavior against
// these, so changing one usually means revisiting the property suite.
func DefaultParams() Params {
	return Params{
		HalfLength:       45,
		MaxSubstitutions: 5,
		StoppageBase:     1,
		StoppageSpread:   4,

		BaseTriggerChance:   0.30,
		TriggerLateBonus:    0.10,
		TriggerPostureBonus: 0.05,

		ChanceWeight:        0.34,
		CardWeight:          0.14,
		SetPieceWeight:      0.26,
		SaveWeight:          0.16,
		InjuryWeight:        0.10,
		TrailingChanceBoost: 1.35,

		PenaltyChance:     0.04,
		PenaltyConversion: 0.78,
		OwnGoalChance:     0.02,
		BaseConversion:    0.22,
		ConversionSpread:  0.25,
		SaveShareOnMiss:   0.45,
		AssistChance:      0.65,

		DirectRedChance:     0.06,
		FoulAggressionCoeff: 1.0,
		FoulComposureCoeff:  0.6,
		FoulFatigueCoeff:    0.5,
		FoulBookingCoeff:    0.35,
		FoulLatenessCoeff:   0.25,

		FatigueThreshold:   40,
		FatigueBenchMargin: 15,
		ProtectLeadMinute:  70,
		ProtectLeadMargin:  2,
		TacticalDelta:      10,

		EnergyBaseDecay:    0.62,
		EnergyStaminaScale: 0.35,
		PostureDrainBonus:  0.25,
	}
}

// Validate rejects params the engine cannot run with. Probabilities are
// clamped at draw time, so the checks here are structural only.
func (p Params) Validate() error {
	if p.HalfLength <= 0 {
		return fmt.Errorf("%w: half length must be positive", ErrInvalidParams)
	}
	if p.MaxSubstitutions < 0 {
		return fmt.Errorf("%w: max substitutions must not be negative", ErrInvalidParams)
	}
	if p.StoppageBase < 0 || p.StoppageSpread < 1 {
		return fmt.Errorf("%w: stoppage base must be >= 0 and spread >= 1", ErrInvalidParams)
	}
	if p.ChanceWeight < 0 || p.CardWeight < 0 || p.SetPieceWeight < 0 ||
		p.SaveWeight < 0 || p.InjuryWeight < 0 {
		return fmt.Errorf("%w: category weights must not be negative", ErrInvalidParams)
	}
	if p.ChanceWeight+p.CardWeight+p.SetPieceWeight+p.SaveWeight+p.InjuryWeight <= 0 {
		return fmt.Errorf("%w: at least one category weight must be positive", ErrInvalidParams)
	}
	if p.TrailingChanceBoost < 1 {
		return fmt.Errorf("%w: trailing chance boost must be >= 1", ErrInvalidParams)
	}
	if p.FatigueThreshold < 0 || p.FatigueThreshold > 100 {
		return fmt.Errorf("%w: fatigue threshold must be within [0,100]", ErrInvalidParams)
	}
	if p.FatigueBenchMargin < 0 {
		return fmt.Errorf("%w: fatigue bench margin must not be negative", ErrInvalidParams)
	}
	if p.ProtectLeadMinute < 0 || p.ProtectLeadMargin < 1 {
		return fmt.Errorf("%w: protect-lead minute must be >= 0 and margin >= 1", ErrInvalidParams)
	}
	if p.TacticalDelta < 0 {
		return fmt.Errorf("%w: tactical delta must not be negative", ErrInvalidParams)
	}
	if p.EnergyBaseDecay < 0 {
		return fmt.Errorf("%w: energy decay must not be negative", ErrInvalidParams)
	}

	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampEnergy(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
