package simulation

import (
	"testing"

	"github.com/veller/retrofoot-sub002/internal/domain/aitrace"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/platform/rng"
)

func probabilityFixture(params Params, rec aitrace.Recorder) (*ProbabilityEngine, *match.State) {
	homeSquad, homeTac := testSquad("home-fc", "h")
	awaySquad, awayTac := testSquad("away-fc", "a")
	roster := map[string]player.Player{}
	for _, p := range homeSquad {
		roster[p.ID] = p
	}
	for _, p := range awaySquad {
		roster[p.ID] = p
	}

	attrs := NewAttributeModel(params)
	disc := NewDisciplineModel(params, attrs, roster, rec)
	pe := NewProbabilityEngine(params, attrs, disc, roster, rec)

	s := &match.State{
		ID:         "m-prob",
		Status:     match.StatusInProgress,
		Minute:     30,
		Possession: match.SideHome,
		Home:       newTeamState(homeTac, roster),
		Away:       newTeamState(awayTac, roster),
	}
	return pe, s
}

func TestZeroTriggerNeverEmits(t *testing.T) {
	params := DefaultParams()
	params.BaseTriggerChance = 0
	params.TriggerLateBonus = 0
	params.TriggerPostureBonus = 0

	pe, s := probabilityFixture(params, aitrace.NopRecorder{})
	stream := rng.New(11)
	for i := 0; i < 200; i++ {
		pe.RollMinute(s, stream)
	}
	if len(s.Events) != 0 {
		t.Fatalf("events=%d want=0 with a zero trigger chance", len(s.Events))
	}
	if s.HomeScore != 0 || s.AwayScore != 0 {
		t.Fatalf("score moved without events: %d-%d", s.HomeScore, s.AwayScore)
	}
}

func TestCertainTriggerEmitsEveryMinute(t *testing.T) {
	params := DefaultParams()
	params.BaseTriggerChance = 1
	// Chance only, and every chance is a goal.
	params.CardWeight, params.SetPieceWeight, params.SaveWeight, params.InjuryWeight = 0, 0, 0, 0
	params.PenaltyChance = 0
	params.OwnGoalChance = 0
	params.BaseConversion = 5 // clamped to 1

	pe, s := probabilityFixture(params, aitrace.NopRecorder{})
	stream := rng.New(3)
	for i := 0; i < 10; i++ {
		pe.RollMinute(s, stream)
	}

	if s.HomeScore != 10 {
		t.Fatalf("home score=%d want=10", s.HomeScore)
	}
	for i, e := range s.Events {
		if e.Type != match.EventGoal {
			t.Fatalf("event %d type=%s want=%s", i, e.Type, match.EventGoal)
		}
		if e.Team != match.SideHome {
			t.Fatalf("event %d credited to %s want=%s", i, e.Team, match.SideHome)
		}
		if e.PlayerID == "" {
			t.Fatalf("event %d has no scorer", i)
		}
		if e.AssistPlayerID == e.PlayerID && e.AssistPlayerID != "" {
			t.Fatalf("event %d scorer assisted themselves", i)
		}
	}
}

func TestCardCategoryBooksDefendingSide(t *testing.T) {
	params := DefaultParams()
	params.BaseTriggerChance = 1
	params.ChanceWeight, params.SetPieceWeight, params.SaveWeight, params.InjuryWeight = 0, 0, 0, 0
	params.DirectRedChance = 0

	pe, s := probabilityFixture(params, aitrace.NopRecorder{})
	stream := rng.New(21)
	pe.RollMinute(s, stream)

	if len(s.Events) != 1 {
		t.Fatalf("events=%d want=1", len(s.Events))
	}
	e := s.Events[0]
	if e.Type != match.EventYellowCard {
		t.Fatalf("event type=%s want=%s", e.Type, match.EventYellowCard)
	}
	if e.Team != match.SideAway {
		t.Fatalf("card against %s, want the side out of possession", e.Team)
	}
	if s.Away.Bookings[e.PlayerID] != 1 {
		t.Fatalf("bookings[%s]=%d want=1", e.PlayerID, s.Away.Bookings[e.PlayerID])
	}
}

func TestCardDegradesToFreeKickWithoutFoulers(t *testing.T) {
	params := DefaultParams()
	params.BaseTriggerChance = 1
	params.ChanceWeight, params.SetPieceWeight, params.SaveWeight, params.InjuryWeight = 0, 0, 0, 0

	pe, s := probabilityFixture(params, aitrace.NopRecorder{})
	for _, id := range s.Away.Lineup {
		s.Away.SentOff[id] = true
	}

	pe.RollMinute(s, rng.New(2))
	if len(s.Events) != 1 || s.Events[0].Type != match.EventFreeKick {
		t.Fatalf("events=%+v want a single free_kick", s.Events)
	}
	if s.Events[0].Team != match.SideHome {
		t.Fatalf("free kick for %s want=%s", s.Events[0].Team, match.SideHome)
	}
}

func TestTracesCarryRawAndClampedProbabilities(t *testing.T) {
	params := DefaultParams()
	params.BaseTriggerChance = 1
	params.ChanceWeight = 1
	params.CardWeight, params.SetPieceWeight, params.SaveWeight, params.InjuryWeight = 0, 0, 0, 0
	params.PenaltyChance = 0
	params.OwnGoalChance = 0

	log := aitrace.NewLog(0)
	pe, s := probabilityFixture(params, log)
	pe.RollMinute(s, rng.New(7))

	probes := log.Query(aitrace.Filter{Type: aitrace.TypeEventProbability})
	if len(probes) != 1 {
		t.Fatalf("event_probability traces=%d want=1", len(probes))
	}
	if probes[0].Outcome != "chance" {
		t.Fatalf("outcome=%s want=chance", probes[0].Outcome)
	}

	chances := log.Query(aitrace.Filter{Type: aitrace.TypeChanceEvaluation})
	if len(chances) != 1 {
		t.Fatalf("chance_evaluation traces=%d want=1", len(chances))
	}
	for _, key := range []string{"raw", "clamped"} {
		if _, ok := chances[0].Computed[key]; !ok {
			t.Fatalf("chance_evaluation missing computed %q", key)
		}
	}
}
