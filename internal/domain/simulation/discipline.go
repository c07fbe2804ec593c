package simulation

import (
	"github.com/veller/retrofoot-sub002/internal/domain/aitrace"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/platform/rng"
)

// CardSeverity is the disciplinary outcome of a carded foul.
type CardSeverity string

const (
	CardYellow       CardSeverity = "yellow"
	CardSecondYellow CardSeverity = "second_yellow"
	CardDirectRed    CardSeverity = "direct_red"
)

// FoulDecision names the player the weighted draw picked and how badly
// it went for them.
type FoulDecision struct {
	PlayerID string
	Severity CardSeverity
}

// DisciplineModel picks a fouler on the defending side when the
// category roll lands on "card".
type DisciplineModel struct {
	params Params
	attrs  *AttributeModel
	roster map[string]player.Player
	rec    aitrace.Recorder
}

func NewDisciplineModel(params Params, attrs *AttributeModel, roster map[string]player.Player, rec aitrace.Recorder) *DisciplineModel {
	return &DisciplineModel{params: params, attrs: attrs, roster: roster, rec: rec}
}

// MaybeFoul draws a fouler over the defending side's eligible players.
// A player already booked is always dismissed on a second booking. With
// nobody eligible it returns ok=false and the caller degrades the
// minute to an uncarded free kick.
func (m *DisciplineModel) MaybeFoul(matchID string, t *match.TeamState, side match.Side, minute int, stream *rng.Stream) (FoulDecision, bool) {
	candidates := make([]string, 0, len(t.Lineup))
	weights := make([]float64, 0, len(t.Lineup))
	for _, id := range t.Lineup {
		if t.SentOff[id] {
			continue
		}
		p, ok := m.roster[id]
		if !ok {
			continue
		}
		candidates = append(candidates, id)
		weights = append(weights, m.attrs.FoulWeight(p, t.Energy[id], t.Bookings[id], minute))
	}
	if len(candidates) == 0 {
		m.rec.Record(aitrace.Event{
			Type:    aitrace.TypeCardDecision,
			Minute:  minute,
			MatchID: matchID,
			Team:    string(side),
			Outcome: "no_eligible_fouler",
		})
		return FoulDecision{}, false
	}

	idx := stream.Weighted(weights)
	foulerID := candidates[idx]

	severity := CardYellow
	switch {
	case t.Bookings[foulerID] >= 1:
		severity = CardSecondYellow
	case stream.Float64() < clamp01(m.params.DirectRedChance):
		severity = CardDirectRed
	}

	computed := make(map[string]any, len(candidates)+1)
	for i, id := range candidates {
		computed["weight."+id] = weights[i]
	}
	computed["directRedChance"] = m.params.DirectRedChance
	m.rec.Record(aitrace.Event{
		Type:     aitrace.TypeCardDecision,
		Minute:   minute,
		MatchID:  matchID,
		Team:     string(side),
		PlayerID: foulerID,
		Inputs: map[string]any{
			"bookings": t.Bookings[foulerID],
			"energy":   t.Energy[foulerID],
		},
		Computed: computed,
		Outcome:  string(severity),
	})

	return FoulDecision{PlayerID: foulerID, Severity: severity}, true
}
