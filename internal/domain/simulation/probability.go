package simulation

import (
	"github.com/veller/retrofoot-sub002/internal/domain/aitrace"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/tactics"
	"github.com/veller/retrofoot-sub002/internal/platform/rng"
)

// ProbabilityEngine decides whether anything notable happens this
// minute and resolves what it is. All draws come from the single match
// stream in a fixed order, so a seed replays to the same timeline.
type ProbabilityEngine struct {
	params Params
	attrs  *AttributeModel
	disc   *DisciplineModel
	roster map[string]player.Player
	rec    aitrace.Recorder
}

func NewProbabilityEngine(params Params, attrs *AttributeModel, disc *DisciplineModel, roster map[string]player.Player, rec aitrace.Recorder) *ProbabilityEngine {
	return &ProbabilityEngine{params: params, attrs: attrs, disc: disc, roster: roster, rec: rec}
}

var categoryNames = []string{"chance", "card", "set_piece", "save", "injury"}

// RollMinute performs the trigger roll and, when it fires, the category
// and resolution rolls. Events are appended to the state and scores,
// bookings and dismissals are applied in place. Half-time and full-time
// are never rolled here; the state machine injects them.
func (pe *ProbabilityEngine) RollMinute(s *match.State, stream *rng.Stream) {
	minute := s.Minute
	atk := s.Possession
	atkTeam := s.Team(atk)

	raw := pe.params.BaseTriggerChance + pe.params.TriggerLateBonus*float64(minute)/90
	switch atkTeam.Tactics.Posture {
	case tactics.PostureAttacking:
		raw += pe.params.TriggerPostureBonus
	case tactics.PostureDefensive:
		raw -= pe.params.TriggerPostureBonus
	}
	trigger := clamp01(raw)

	roll := stream.Float64()
	if roll >= trigger {
		pe.rec.Record(aitrace.Event{
			Type:     aitrace.TypeEventProbability,
			Minute:   minute,
			MatchID:  s.ID,
			Team:     string(atk),
			Inputs:   map[string]any{"posture": string(atkTeam.Tactics.Posture)},
			Computed: map[string]any{"raw": raw, "clamped": trigger, "roll": roll},
			Outcome:  "none",
		})
		return
	}

	weights := []float64{
		pe.params.ChanceWeight,
		pe.params.CardWeight,
		pe.params.SetPieceWeight,
		pe.params.SaveWeight,
		pe.params.InjuryWeight,
	}
	if s.GoalDifference(atk) < 0 {
		weights[0] *= pe.params.TrailingChanceBoost
	}
	if atkTeam.Tactics.Posture == tactics.PostureAttacking {
		weights[0] *= 1 + pe.params.TriggerPostureBonus
	}
	idx := stream.Weighted(weights)

	pe.rec.Record(aitrace.Event{
		Type:    aitrace.TypeEventProbability,
		Minute:  minute,
		MatchID: s.ID,
		Team:    string(atk),
		Inputs: map[string]any{
			"posture":  string(atkTeam.Tactics.Posture),
			"goalDiff": s.GoalDifference(atk),
		},
		Computed: map[string]any{
			"raw":       raw,
			"clamped":   trigger,
			"roll":      roll,
			"chance":    weights[0],
			"card":      weights[1],
			"set_piece": weights[2],
			"save":      weights[3],
			"injury":    weights[4],
		},
		Outcome: categoryNames[idx],
	})

	switch categoryNames[idx] {
	case "chance":
		pe.resolveChance(s, atk, stream)
	case "card":
		pe.resolveCard(s, atk.Opponent(), stream)
	case "set_piece":
		if stream.Float64() < 0.6 {
			s.AppendEvent(match.Event{Minute: minute, Type: match.EventCorner, Team: atk})
		} else {
			s.AppendEvent(match.Event{Minute: minute, Type: match.EventFreeKick, Team: atk})
		}
	case "save":
		def := atk.Opponent()
		s.AppendEvent(match.Event{
			Minute:   minute,
			Type:     match.EventSave,
			Team:     def,
			PlayerID: pe.goalkeeper(s.Team(def)),
		})
	case "injury":
		pe.resolveInjury(s, stream)
	}
}

// resolveChance runs the conversion roll for the attacking side.
func (pe *ProbabilityEngine) resolveChance(s *match.State, atk match.Side, stream *rng.Stream) {
	minute := s.Minute
	atkTeam := s.Team(atk)
	defTeam := s.Team(atk.Opponent())

	shooterID, ok := pe.pickOnPitch(atkTeam, stream, func(p player.Player, energy float64) float64 {
		return pe.attrs.FinishingQuality(p, energy)
	})
	if !ok {
		return
	}
	shooter := pe.roster[shooterID]

	if stream.Float64() < clamp01(pe.params.PenaltyChance) {
		scored := stream.Float64() < clamp01(pe.params.PenaltyConversion)
		pe.recordChance(s, atk, shooterID, pe.params.PenaltyConversion, pe.params.PenaltyConversion, boolOutcome(scored, "penalty_scored", "penalty_missed"))
		if scored {
			pe.score(s, atk)
			s.AppendEvent(match.Event{Minute: minute, Type: match.EventPenaltyScored, Team: atk, PlayerID: shooterID})
		} else {
			s.AppendEvent(match.Event{Minute: minute, Type: match.EventPenaltyMissed, Team: atk, PlayerID: shooterID})
		}
		return
	}

	if stream.Float64() < clamp01(pe.params.OwnGoalChance) {
		defenderID, ok := pe.pickOnPitch(defTeam, stream, func(p player.Player, energy float64) float64 {
			if p.Position == player.PositionDefender {
				return 3
			}
			return 1
		})
		if ok {
			pe.score(s, atk)
			s.AppendEvent(match.Event{
				Minute:      minute,
				Type:        match.EventOwnGoal,
				Team:        atk.Opponent(),
				PlayerID:    defenderID,
				Description: "own goal",
			})
			return
		}
	}

	quality := pe.attrs.FinishingQuality(shooter, atkTeam.Energy[shooterID])
	strengthEdge := (pe.attrs.TeamStrength(atkTeam, pe.roster) - pe.attrs.TeamStrength(defTeam, pe.roster)) / 100
	rawConv := pe.params.BaseConversion + pe.params.ConversionSpread*(quality-0.35) + 0.1*strengthEdge
	conv := clamp01(rawConv)

	switch r := stream.Float64(); {
	case r < conv:
		pe.recordChance(s, atk, shooterID, rawConv, conv, "goal")
		pe.score(s, atk)
		assistID := pe.maybeAssist(atkTeam, shooterID, stream)
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventGoal, Team: atk, PlayerID: shooterID, AssistPlayerID: assistID})
	case stream.Float64() < clamp01(pe.params.SaveShareOnMiss):
		pe.recordChance(s, atk, shooterID, rawConv, conv, "save")
		s.AppendEvent(match.Event{
			Minute:   minute,
			Type:     match.EventSave,
			Team:     atk.Opponent(),
			PlayerID: pe.goalkeeper(defTeam),
		})
	default:
		pe.recordChance(s, atk, shooterID, rawConv, conv, "chance_missed")
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventChanceMissed, Team: atk, PlayerID: shooterID})
	}
}

// resolveCard delegates to the discipline model against the side out of
// possession. With no eligible fouler the minute degrades to a plain
// free kick instead of failing.
func (pe *ProbabilityEngine) resolveCard(s *match.State, def match.Side, stream *rng.Stream) {
	minute := s.Minute
	defTeam := s.Team(def)

	decision, ok := pe.disc.MaybeFoul(s.ID, defTeam, def, minute, stream)
	if !ok {
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventFreeKick, Team: def.Opponent()})
		return
	}

	switch decision.Severity {
	case CardSecondYellow:
		defTeam.Bookings[decision.PlayerID] = 2
		defTeam.SentOff[decision.PlayerID] = true
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventYellowCard, Team: def, PlayerID: decision.PlayerID, Description: "second booking"})
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventRedCard, Team: def, PlayerID: decision.PlayerID, Description: "second booking"})
	case CardDirectRed:
		defTeam.Bookings[decision.PlayerID] = 2
		defTeam.SentOff[decision.PlayerID] = true
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventRedCard, Team: def, PlayerID: decision.PlayerID, Description: "serious foul play"})
	default:
		defTeam.Bookings[decision.PlayerID]++
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventYellowCard, Team: def, PlayerID: decision.PlayerID})
	}
}

func (pe *ProbabilityEngine) resolveInjury(s *match.State, stream *rng.Stream) {
	side := match.SideHome
	if stream.Float64() < 0.5 {
		side = match.SideAway
	}
	t := s.Team(side)
	id, ok := pe.pickOnPitch(t, stream, func(p player.Player, energy float64) float64 {
		return 1 + (100-energy)/100
	})
	if !ok {
		return
	}
	s.AppendEvent(match.Event{Minute: s.Minute, Type: match.EventInjury, Team: side, PlayerID: id})
}

func (pe *ProbabilityEngine) maybeAssist(t *match.TeamState, shooterID string, stream *rng.Stream) string {
	if stream.Float64() >= clamp01(pe.params.AssistChance) {
		return ""
	}
	id, ok := pe.pickOnPitch(t, stream, func(p player.Player, energy float64) float64 {
		if p.ID == shooterID || p.Position == player.PositionGoalkeeper {
			return 0
		}
		return float64(p.Attributes.Technical)
	})
	if !ok || id == shooterID {
		return ""
	}
	return id
}

// pickOnPitch runs a weighted draw over on-pitch players in lineup
// order. Lineup order is fixed at kickoff and mutated only in place, so
// the draw is replay-stable.
func (pe *ProbabilityEngine) pickOnPitch(t *match.TeamState, stream *rng.Stream, weightFn func(player.Player, float64) float64) (string, bool) {
	ids := make([]string, 0, len(t.Lineup))
	weights := make([]float64, 0, len(t.Lineup))
	for _, id := range t.Lineup {
		if t.SentOff[id] {
			continue
		}
		p, ok := pe.roster[id]
		if !ok {
			continue
		}
		ids = append(ids, id)
		weights = append(weights, weightFn(p, t.Energy[id]))
	}
	if len(ids) == 0 {
		return "", false
	}
	return ids[stream.Weighted(weights)], true
}

func (pe *ProbabilityEngine) goalkeeper(t *match.TeamState) string {
	for _, id := range t.Lineup {
		if t.SentOff[id] {
			continue
		}
		if p, ok := pe.roster[id]; ok && p.Position == player.PositionGoalkeeper {
			return id
		}
	}
	return ""
}

func (pe *ProbabilityEngine) score(s *match.State, side match.Side) {
	if side == match.SideAway {
		s.AwayScore++
		return
	}
	s.HomeScore++
}

func (pe *ProbabilityEngine) recordChance(s *match.State, side match.Side, shooterID string, raw, clamped float64, outcome string) {
	pe.rec.Record(aitrace.Event{
		Type:     aitrace.TypeChanceEvaluation,
		Minute:   s.Minute,
		MatchID:  s.ID,
		Team:     string(side),
		PlayerID: shooterID,
		Computed: map[string]any{"raw": raw, "clamped": clamped},
		Outcome:  outcome,
	})
}

func boolOutcome(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
