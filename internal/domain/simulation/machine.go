package simulation

import (
	"errors"
	"fmt"

	"github.com/veller/retrofoot-sub002/internal/domain/aitrace"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/tactics"
	"github.com/veller/retrofoot-sub002/internal/platform/rng"
)

var ErrMatchSetup = errors.New("cannot start match")

// Config is everything a match needs at kickoff. The roster map covers
// both squads and is read-only for the whole simulation.
type Config struct {
	MatchID  string
	Seed     int64
	Home     tactics.Tactics
	Away     tactics.Tactics
	Roster   map[string]player.Player
	Params   Params
	Recorder aitrace.Recorder
}

// Engine owns one live match: the state, the single RNG stream, and
// the models it sequences every minute. Not safe for concurrent use;
// run one engine per goroutine and share only the roster.
type Engine struct {
	params Params
	roster map[string]player.Player
	rec    aitrace.Recorder
	stream *rng.Stream

	energy *EnergyModel
	prob   *ProbabilityEngine
	subs   *SubstitutionPolicy

	state       *match.State
	stoppageSet bool
}

// New validates the setup and builds the kickoff state. This is the
// only place a match can fail; after a successful New the engine always
// reaches full time.
func New(cfg Config) (*Engine, error) {
	if cfg.MatchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrMatchSetup)
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchSetup, err)
	}
	if cfg.Home.TeamID == cfg.Away.TeamID {
		return nil, fmt.Errorf("%w: home and away must be different teams", ErrMatchSetup)
	}
	if err := cfg.Home.Validate(cfg.Roster); err != nil {
		return nil, fmt.Errorf("%w: home tactics: %v", ErrMatchSetup, err)
	}
	if err := cfg.Away.Validate(cfg.Roster); err != nil {
		return nil, fmt.Errorf("%w: away tactics: %v", ErrMatchSetup, err)
	}

	rec := cfg.Recorder
	if rec == nil {
		rec = aitrace.NopRecorder{}
	}

	attrs := NewAttributeModel(cfg.Params)
	disc := NewDisciplineModel(cfg.Params, attrs, cfg.Roster, rec)

	e := &Engine{
		params: cfg.Params,
		roster: cfg.Roster,
		rec:    rec,
		stream: rng.New(cfg.Seed),
		energy: NewEnergyModel(cfg.Params),
		prob:   NewProbabilityEngine(cfg.Params, attrs, disc, cfg.Roster, rec),
		subs:   NewSubstitutionPolicy(cfg.Params, attrs, cfg.Roster, rec),
		state: &match.State{
			ID:         cfg.MatchID,
			Seed:       cfg.Seed,
			Status:     match.StatusScheduled,
			Possession: match.SideHome,
			Home:       newTeamState(cfg.Home, cfg.Roster),
			Away:       newTeamState(cfg.Away, cfg.Roster),
		},
	}
	return e, nil
}

func newTeamState(t tactics.Tactics, roster map[string]player.Player) match.TeamState {
	sheet := append(append([]string(nil), t.Lineup...), t.Substitutes...)
	ts := match.TeamState{
		TeamID:        t.TeamID,
		Tactics:       t,
		Lineup:        append([]string(nil), t.Lineup...),
		Bench:         append([]string(nil), t.Substitutes...),
		Energy:        make(map[string]float64, len(sheet)),
		Bookings:      make(map[string]int, len(sheet)),
		SentOff:       make(map[string]bool, len(sheet)),
		MinutesPlayed: make(map[string]int, len(sheet)),
	}
	for _, id := range sheet {
		ts.Energy[id] = clampEnergy(roster[id].BaselineEnergy)
	}
	return ts
}

// Kickoff moves Scheduled to InProgress. Calling it twice is a no-op.
func (e *Engine) Kickoff() {
	if e.state.Status != match.StatusScheduled {
		return
	}
	e.state.Status = match.StatusInProgress
	e.state.AppendEvent(match.Event{Minute: 0, Type: match.EventKickoff, Team: match.SideHome})
	e.rec.Record(aitrace.Event{
		Type:    aitrace.TypeStateTransition,
		Minute:  0,
		MatchID: e.state.ID,
		Outcome: match.StatusInProgress,
	})
}

// Tick advances one minute: energy first, then substitutions, then the
// probability roll, then any fixed events. After full time it does
// nothing; no tick ever returns an error.
func (e *Engine) Tick() {
	if e.state.Finished() {
		return
	}
	if e.state.Status == match.StatusScheduled {
		e.Kickoff()
	}

	s := e.state
	s.Minute++
	minute := s.Minute

	e.decayEnergy(&s.Home)
	e.decayEnergy(&s.Away)
	e.swingPossession()

	for _, side := range []match.Side{match.SideHome, match.SideAway} {
		if d := e.subs.Evaluate(s, side, minute); d != nil {
			s.AppendEvent(e.subs.Apply(s, side, d, minute))
		}
	}

	e.prob.RollMinute(s, e.stream)

	if minute == e.params.HalfLength {
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventHalfTime})
	}

	full := 2 * e.params.HalfLength
	if minute == full && !e.stoppageSet {
		s.Stoppage = e.params.StoppageBase + e.stream.IntN(e.params.StoppageSpread)
		e.stoppageSet = true
		e.rec.Record(aitrace.Event{
			Type:     aitrace.TypeStoppageComputed,
			Minute:   minute,
			MatchID:  s.ID,
			Computed: map[string]any{"stoppage": s.Stoppage},
			Outcome:  fmt.Sprintf("+%d", s.Stoppage),
		})
	}
	if e.stoppageSet && minute >= full+s.Stoppage {
		s.AppendEvent(match.Event{Minute: minute, Type: match.EventFullTime})
		s.Status = match.StatusFullTime
		e.rec.Record(aitrace.Event{
			Type:    aitrace.TypeStateTransition,
			Minute:  minute,
			MatchID: s.ID,
			Outcome: match.StatusFullTime,
		})
	}
}

// Advance ticks up to n minutes, stopping early at full time. Returns
// the minutes actually played.
func (e *Engine) Advance(n int) int {
	played := 0
	for i := 0; i < n && !e.state.Finished(); i++ {
		e.Tick()
		played++
	}
	return played
}

// Play runs the match to completion.
func (e *Engine) Play() {
	for !e.state.Finished() {
		e.Tick()
	}
}

// Snapshot returns a deep copy of the live state.
func (e *Engine) Snapshot() *match.State {
	return e.state.Clone()
}

// Finished reports whether the match reached full time.
func (e *Engine) Finished() bool {
	return e.state.Finished()
}

func (e *Engine) decayEnergy(t *match.TeamState) {
	for _, id := range t.Lineup {
		if t.SentOff[id] {
			continue
		}
		p, ok := e.roster[id]
		if !ok {
			continue
		}
		t.MinutesPlayed[id]++
		t.Energy[id] = e.energy.Decay(p, t.MinutesPlayed[id], t.Tactics.Posture)
	}
}

// swingPossession redraws which side holds the attacking role, biased
// by live team strength. One draw per minute keeps the stream layout
// fixed.
func (e *Engine) swingPossession() {
	s := e.state
	attrs := e.prob.attrs
	home := attrs.TeamStrength(&s.Home, e.roster)
	away := attrs.TeamStrength(&s.Away, e.roster)
	pHome := 0.5
	if home+away > 0 {
		pHome = home / (home + away)
	}

	side := match.SideAway
	if e.stream.Float64() < pHome {
		side = match.SideHome
	}
	if side != s.Possession {
		s.Possession = side
		e.rec.Record(aitrace.Event{
			Type:     aitrace.TypePossessionSwing,
			Minute:   s.Minute,
			MatchID:  s.ID,
			Team:     string(side),
			Computed: map[string]any{"homeStrength": home, "awayStrength": away, "pHome": pHome},
			Outcome:  string(side),
		})
	}
}
