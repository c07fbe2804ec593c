package simulation

import (
	"github.com/veller/retrofoot-sub002/internal/domain/aitrace"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
)

// SubReason is the machine-readable reason carried in a substitution
// event's description.
type SubReason string

const (
	SubFatigue     SubReason = "fatigue"
	SubProtectLead SubReason = "protect_lead"
	SubTactical    SubReason = "tactical"
)

// SubDecision is a resolved lineup swap: In comes off the bench, Out
// leaves the pitch.
type SubDecision struct {
	Reason SubReason
	OutID  string
	InID   string
	gap    float64
}

// SubstitutionPolicy evaluates the three AI substitution rules each
// minute for each side.
type SubstitutionPolicy struct {
	params Params
	attrs  *AttributeModel
	roster map[string]player.Player
	rec    aitrace.Recorder
}

func NewSubstitutionPolicy(params Params, attrs *AttributeModel, roster map[string]player.Player, rec aitrace.Recorder) *SubstitutionPolicy {
	return &SubstitutionPolicy{params: params, attrs: attrs, roster: roster, rec: rec}
}

// defensiveRank orders positions back to front; a lower rank is the
// more defensive role.
func defensiveRank(pos player.Position) int {
	switch pos {
	case player.PositionGoalkeeper:
		return 0
	case player.PositionDefender:
		return 1
	case player.PositionMidfielder:
		return 2
	default:
		return 3
	}
}

// Evaluate tries the rules in priority order: fatigue, protect_lead,
// tactical. The first rule with any qualifying pair wins and the most
// extreme pair is chosen, ties broken by player id so replays stay
// stable. Returns nil when no rule fires or the sub budget is spent.
func (sp *SubstitutionPolicy) Evaluate(s *match.State, side match.Side, minute int) *SubDecision {
	t := s.Team(side)
	if t.SubsUsed >= sp.params.MaxSubstitutions || len(t.Bench) == 0 {
		return nil
	}

	if d := sp.fatigue(t); d != nil {
		return d
	}
	if d := sp.protectLead(s, side, minute); d != nil {
		return d
	}
	return sp.tactical(t)
}

// fatigue swaps a drained player for a same-position bench player with
// materially more in the tank.
func (sp *SubstitutionPolicy) fatigue(t *match.TeamState) *SubDecision {
	var best *SubDecision
	for _, out := range t.Lineup {
		if t.SentOff[out] || t.Energy[out] >= sp.params.FatigueThreshold {
			continue
		}
		outPlayer, ok := sp.roster[out]
		if !ok {
			continue
		}
		for _, in := range t.Bench {
			inPlayer, ok := sp.roster[in]
			if !ok || inPlayer.Position != outPlayer.Position {
				continue
			}
			gap := t.Energy[in] - t.Energy[out]
			if gap <= sp.params.FatigueBenchMargin {
				continue
			}
			best = better(best, &SubDecision{Reason: SubFatigue, OutID: out, InID: in, gap: gap})
		}
	}
	return best
}

// protectLead pulls an advanced player for a more defensive bench
// option once the lead is big enough late on. A same-rank swap
// qualifies only when the incoming player defends better.
func (sp *SubstitutionPolicy) protectLead(s *match.State, side match.Side, minute int) *SubDecision {
	if minute < sp.params.ProtectLeadMinute || s.GoalDifference(side) < sp.params.ProtectLeadMargin {
		return nil
	}
	t := s.Team(side)

	var best *SubDecision
	for _, out := range t.Lineup {
		if t.SentOff[out] {
			continue
		}
		outPlayer, ok := sp.roster[out]
		if !ok || outPlayer.Position == player.PositionGoalkeeper {
			continue
		}
		for _, in := range t.Bench {
			inPlayer, ok := sp.roster[in]
			if !ok || inPlayer.Position == player.PositionGoalkeeper {
				continue
			}
			rankGap := defensiveRank(outPlayer.Position) - defensiveRank(inPlayer.Position)
			defGap := float64(inPlayer.Attributes.Defending - outPlayer.Attributes.Defending)
			if rankGap < 0 || (rankGap == 0 && defGap <= 0) {
				continue
			}
			gap := float64(rankGap)*100 + defGap
			best = better(best, &SubDecision{Reason: SubProtectLead, OutID: out, InID: in, gap: gap})
		}
	}
	return best
}

// tactical upgrades a position when the bench holds a clearly better
// player and the outgoing one has no energy excuse.
func (sp *SubstitutionPolicy) tactical(t *match.TeamState) *SubDecision {
	var best *SubDecision
	for _, out := range t.Lineup {
		if t.SentOff[out] || t.Energy[out] < sp.params.FatigueThreshold {
			continue
		}
		outPlayer, ok := sp.roster[out]
		if !ok {
			continue
		}
		outAbility := sp.attrs.CompositeAbility(outPlayer)
		for _, in := range t.Bench {
			inPlayer, ok := sp.roster[in]
			if !ok || inPlayer.Position != outPlayer.Position {
				continue
			}
			gap := sp.attrs.CompositeAbility(inPlayer) - outAbility
			if gap <= sp.params.TacticalDelta {
				continue
			}
			best = better(best, &SubDecision{Reason: SubTactical, OutID: out, InID: in, gap: gap})
		}
	}
	return best
}

// better keeps the pair with the larger gap, breaking ties by outgoing
// then incoming player id.
func better(a, b *SubDecision) *SubDecision {
	if a == nil {
		return b
	}
	if b.gap != a.gap {
		if b.gap > a.gap {
			return b
		}
		return a
	}
	if b.OutID != a.OutID {
		if b.OutID < a.OutID {
			return b
		}
		return a
	}
	if b.InID < a.InID {
		return b
	}
	return a
}

// Apply executes a decision against the live state: the lineup slot is
// swapped in place, the incoming player leaves the bench for good, and
// the counter moves by exactly one.
func (sp *SubstitutionPolicy) Apply(s *match.State, side match.Side, d *SubDecision, minute int) match.Event {
	t := s.Team(side)

	for i, id := range t.Lineup {
		if id == d.OutID {
			t.Lineup[i] = d.InID
			break
		}
	}
	bench := t.Bench[:0]
	for _, id := range t.Bench {
		if id != d.InID {
			bench = append(bench, id)
		}
	}
	t.Bench = bench
	t.SubsUsed++

	sp.rec.Record(aitrace.Event{
		Type:     aitrace.TypeSubDecision,
		Minute:   minute,
		MatchID:  s.ID,
		Team:     string(side),
		PlayerID: d.InID,
		Inputs: map[string]any{
			"outgoing":       d.OutID,
			"outgoingEnergy": t.Energy[d.OutID],
			"incomingEnergy": t.Energy[d.InID],
			"subsUsed":       t.SubsUsed,
		},
		Computed: map[string]any{"gap": d.gap},
		Outcome:  string(d.Reason),
	})

	return match.Event{
		Minute:         minute,
		Type:           match.EventSubstitution,
		Team:           side,
		PlayerID:       d.InID,
		AssistPlayerID: d.OutID,
		Description:    string(d.Reason),
	}
}
