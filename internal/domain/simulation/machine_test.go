package simulation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/tactics"
)

func playMatch(t *testing.T, cfg Config) *match.State {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Play()
	return e.Snapshot()
}

func TestEngineDeterminism(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1984, 99991} {
		a := playMatch(t, testConfig(seed))
		b := playMatch(t, testConfig(seed))
		if !reflect.DeepEqual(a.Events, b.Events) {
			t.Fatalf("seed %d: event logs differ across identical runs", seed)
		}
		if a.HomeScore != b.HomeScore || a.AwayScore != b.AwayScore {
			t.Fatalf("seed %d: score differs: %d-%d vs %d-%d",
				seed, a.HomeScore, a.AwayScore, b.HomeScore, b.AwayScore)
		}
	}
}

func TestEngineAlwaysReachesFullTime(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		s := playMatch(t, testConfig(seed))
		if s.Status != match.StatusFullTime {
			t.Fatalf("seed %d: status=%s want=%s", seed, s.Status, match.StatusFullTime)
		}
		last := s.Events[len(s.Events)-1]
		if last.Type != match.EventFullTime {
			t.Fatalf("seed %d: last event=%s want=%s", seed, last.Type, match.EventFullTime)
		}
		if s.Minute != 2*DefaultParams().HalfLength+s.Stoppage {
			t.Fatalf("seed %d: finished at minute %d with stoppage %d", seed, s.Minute, s.Stoppage)
		}
	}
}

func TestBookingEscalationInvariant(t *testing.T) {
	cfg := testConfig(0)
	cfg.Params.CardWeight = 3
	cfg.Params.DirectRedChance = 0.2

	for seed := int64(1); seed <= 40; seed++ {
		cfg.Seed = seed
		s := playMatch(t, cfg)

		reds := map[string]int{}
		for _, e := range s.Events {
			if e.Type == match.EventRedCard {
				reds[e.PlayerID]++
			}
		}
		for _, ts := range []*match.TeamState{&s.Home, &s.Away} {
			for id, n := range ts.Bookings {
				if n < 0 || n > 2 {
					t.Fatalf("seed %d: bookings[%s]=%d out of range", seed, id, n)
				}
				if (n == 2) != ts.SentOff[id] {
					t.Fatalf("seed %d: bookings[%s]=%d but sentOff=%v", seed, id, n, ts.SentOff[id])
				}
				if (n == 2) != (reds[id] == 1) {
					t.Fatalf("seed %d: bookings[%s]=%d but %d red card events", seed, id, n, reds[id])
				}
			}
			for id := range ts.SentOff {
				if ts.SentOff[id] && reds[id] != 1 {
					t.Fatalf("seed %d: %s sent off with %d red card events", seed, id, reds[id])
				}
			}
		}
		for id, n := range reds {
			if n > 1 {
				t.Fatalf("seed %d: %s has %d red cards", seed, id, n)
			}
		}
	}
}

func TestSubstitutionBound(t *testing.T) {
	cfg := testConfig(0)
	for seed := int64(1); seed <= 25; seed++ {
		cfg.Seed = seed
		s := playMatch(t, cfg)

		subEvents := map[match.Side]int{}
		for _, e := range s.Events {
			if e.Type == match.EventSubstitution {
				subEvents[e.Team]++
			}
		}
		if s.Home.SubsUsed > cfg.Params.MaxSubstitutions || s.Away.SubsUsed > cfg.Params.MaxSubstitutions {
			t.Fatalf("seed %d: subs used %d/%d exceed max %d",
				seed, s.Home.SubsUsed, s.Away.SubsUsed, cfg.Params.MaxSubstitutions)
		}
		if subEvents[match.SideHome] != s.Home.SubsUsed {
			t.Fatalf("seed %d: home sub events=%d counter=%d", seed, subEvents[match.SideHome], s.Home.SubsUsed)
		}
		if subEvents[match.SideAway] != s.Away.SubsUsed {
			t.Fatalf("seed %d: away sub events=%d counter=%d", seed, subEvents[match.SideAway], s.Away.SubsUsed)
		}
	}
}

func TestEnergyBoundsAndMonotonicity(t *testing.T) {
	e, err := New(testConfig(42))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	prev := map[string]float64{}
	for _, ts := range []match.TeamState{e.Snapshot().Home, e.Snapshot().Away} {
		for id, v := range ts.Energy {
			prev[id] = v
		}
	}

	for !e.Finished() {
		e.Tick()
		s := e.Snapshot()
		for _, ts := range []match.TeamState{s.Home, s.Away} {
			for id, v := range ts.Energy {
				if v < 0 || v > 100 {
					t.Fatalf("minute %d: energy[%s]=%f out of [0,100]", s.Minute, id, v)
				}
				if v > prev[id] {
					t.Fatalf("minute %d: energy[%s] increased %f -> %f", s.Minute, id, prev[id], v)
				}
				prev[id] = v
			}
		}
	}
}

func TestEventsOrderedByMinute(t *testing.T) {
	s := playMatch(t, testConfig(13))
	last := -1
	for i, e := range s.Events {
		if e.Minute < last {
			t.Fatalf("event %d at minute %d after minute %d", i, e.Minute, last)
		}
		last = e.Minute
	}
}

func TestFrozenAfterFullTime(t *testing.T) {
	e, err := New(testConfig(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Play()

	before := e.Snapshot()
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	after := e.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed after full time")
	}
}

func TestDefaultLineupsScenario(t *testing.T) {
	cfg := testConfig(2024)
	cfg.Params.StoppageBase = 0
	cfg.Params.StoppageSpread = 1

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Kickoff()

	kick := e.Snapshot()
	if len(kick.Home.Lineup) != 11 || len(kick.Away.Lineup) != 11 {
		t.Fatalf("kickoff lineups: home=%d away=%d want 11/11", len(kick.Home.Lineup), len(kick.Away.Lineup))
	}
	if kick.Events[0].Type != match.EventKickoff || kick.Events[0].Minute != 0 {
		t.Fatalf("first event %+v, want kickoff at minute 0", kick.Events[0])
	}

	e.Play()
	s := e.Snapshot()

	fullTimes := 0
	for _, ev := range s.Events {
		if ev.Type == match.EventFullTime {
			fullTimes++
			if ev.Minute != 90 {
				t.Fatalf("full_time at minute %d, want 90", ev.Minute)
			}
		}
	}
	if fullTimes != 1 {
		t.Fatalf("full_time events=%d want=1", fullTimes)
	}
}

func TestAdvancePartialThenResume(t *testing.T) {
	one, err := New(testConfig(77))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	one.Play()

	two, err := New(testConfig(77))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	two.Advance(30)
	two.Advance(30)
	two.Play()

	if !reflect.DeepEqual(one.Snapshot().Events, two.Snapshot().Events) {
		t.Fatalf("stepwise advance diverged from single run")
	}
}

func TestNewRejectsBadSetup(t *testing.T) {
	base := testConfig(1)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing match id", func(c *Config) { c.MatchID = "" }},
		{"same team twice", func(c *Config) { c.Away.TeamID = c.Home.TeamID }},
		{"short lineup", func(c *Config) { c.Home.Lineup = c.Home.Lineup[:10] }},
		{"unknown formation", func(c *Config) { c.Home.Formation = "9-0-1" }},
		{"bad params", func(c *Config) { c.Params.HalfLength = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(1)
			tc.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, ErrMatchSetup) {
				t.Fatalf("New err=%v want ErrMatchSetup", err)
			}
		})
	}

	if _, err := New(base); err != nil {
		t.Fatalf("baseline config should be valid: %v", err)
	}
}

func TestPosturesStayValidInputs(t *testing.T) {
	cfg := testConfig(3)
	cfg.Home.Posture = tactics.PostureAttacking
	cfg.Away.Posture = tactics.PostureDefensive
	s := playMatch(t, cfg)
	if s.Status != match.StatusFullTime {
		t.Fatalf("status=%s want=%s", s.Status, match.StatusFullTime)
	}
}
