package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/veller/retrofoot-sub002/internal/domain/aitrace"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/simulation"
	"github.com/veller/retrofoot-sub002/internal/domain/tactics"
	"github.com/veller/retrofoot-sub002/internal/domain/team"
	"github.com/veller/retrofoot-sub002/internal/platform/id"
	"github.com/veller/retrofoot-sub002/internal/platform/logging"
)

// MatchService owns the lifecycle of simulated matches. Engines live in
// memory for their whole run; snapshots go to the match repository and
// terminal results to the archive.
type MatchService struct {
	matchRepo  match.Repository
	rosterRepo player.Repository
	teamRepo   team.Repository
	archive    match.ResultArchive
	params     simulation.Params
	traceCap   int
	idgen      id.Generator
	logger     *logging.Logger
	now        func() time.Time

	mu      sync.Mutex
	engines map[string]*engineEntry
}

// engineEntry serializes access to one engine; the engine itself is not
// safe for concurrent use.
type engineEntry struct {
	mu     sync.Mutex
	engine *simulation.Engine
	trace  *aitrace.Log
}

func NewMatchService(
	matchRepo match.Repository,
	rosterRepo player.Repository,
	teamRepo team.Repository,
	archive match.ResultArchive,
	params simulation.Params,
	traceCap int,
	idgen id.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		teamRepo:   teamRepo,
		archive:    archive,
		params:     params,
		traceCap:   traceCap,
		idgen:      idgen,
		logger:     logger,
		now:        time.Now,
		engines:    make(map[string]*engineEntry),
	}
}

type CreateMatchInput struct {
	HomeTeamID   string
	AwayTeamID   string
	Seed         *int64
	HomePosture  string
	AwayPosture  string
	HomeFormation string
	AwayFormation string
}

// CreateMatch validates the setup, builds the kickoff state, and
// registers the engine. This is the only operation that can fail for a
// match; everything after kickoff degrades instead of erroring.
func (s *MatchService) CreateMatch(ctx context.Context, in CreateMatchInput) (*match.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	homeID := strings.TrimSpace(in.HomeTeamID)
	awayID := strings.TrimSpace(in.AwayTeamID)
	if homeID == "" || awayID == "" {
		return nil, fmt.Errorf("%w: home and away team ids are required", ErrInvalidInput)
	}
	if homeID == awayID {
		return nil, fmt.Errorf("%w: home and away must be different teams", ErrInvalidInput)
	}

	roster := make(map[string]player.Player)
	homeTac, err := s.buildTactics(ctx, homeID, in.HomeFormation, in.HomePosture, roster)
	if err != nil {
		return nil, err
	}
	awayTac, err := s.buildTactics(ctx, awayID, in.AwayFormation, in.AwayPosture, roster)
	if err != nil {
		return nil, err
	}

	matchID, err := s.idgen.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate match id: %w", err)
	}
	seed := s.now().UnixNano()
	if in.Seed != nil {
		seed = *in.Seed
	}

	var recorder aitrace.Recorder = aitrace.NopRecorder{}
	var traceLog *aitrace.Log
	if s.traceCap != 0 {
		traceLog = aitrace.NewLog(s.traceCap)
		recorder = traceLog
	}

	engine, err := simulation.New(simulation.Config{
		MatchID:  matchID,
		Seed:     seed,
		Home:     homeTac,
		Away:     awayTac,
		Roster:   roster,
		Params:   s.params,
		Recorder: recorder,
	})
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	engine.Kickoff()

	snapshot := engine.Snapshot()
	if err := s.matchRepo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save match: %w", err)
	}

	s.mu.Lock()
	s.engines[matchID] = &engineEntry{engine: engine, trace: traceLog}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "match created",
		"match_id", matchID,
		"home_team", homeID,
		"away_team", awayID,
		"seed", seed,
	)
	return snapshot, nil
}

// Advance plays up to minutes more ticks. Advancing a finished match is
// a no-op that returns the terminal snapshot.
func (s *MatchService) Advance(ctx context.Context, matchID string, minutes int) (*match.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Advance")
	defer span.End()

	if minutes <= 0 {
		return nil, fmt.Errorf("%w: minutes must be positive", ErrInvalidInput)
	}
	return s.run(ctx, matchID, func(e *simulation.Engine) { e.Advance(minutes) })
}

// Complete runs the match to full time.
func (s *MatchService) Complete(ctx context.Context, matchID string) (*match.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Complete")
	defer span.End()

	return s.run(ctx, matchID, func(e *simulation.Engine) { e.Play() })
}

func (s *MatchService) run(ctx context.Context, matchID string, fn func(*simulation.Engine)) (*match.State, error) {
	entry, err := s.entry(matchID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	wasFinished := entry.engine.Finished()
	fn(entry.engine)
	snapshot := entry.engine.Snapshot()
	entry.mu.Unlock()

	if err := s.matchRepo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save match: %w", err)
	}
	if !wasFinished && snapshot.Finished() {
		s.archiveResult(ctx, snapshot)
	}
	return snapshot, nil
}

func (s *MatchService) archiveResult(ctx context.Context, snapshot *match.State) {
	s.logger.InfoContext(ctx, "match finished",
		"match_id", snapshot.ID,
		"score", fmt.Sprintf("%d-%d", snapshot.HomeScore, snapshot.AwayScore),
		"minute", snapshot.Minute,
	)
	if s.archive == nil {
		return
	}
	result := match.Result{
		MatchID:    snapshot.ID,
		HomeTeamID: snapshot.Home.TeamID,
		AwayTeamID: snapshot.Away.TeamID,
		HomeScore:  snapshot.HomeScore,
		AwayScore:  snapshot.AwayScore,
		Seed:       snapshot.Seed,
		PlayedAt:   s.now().UTC(),
	}
	if err := s.archive.SaveResult(ctx, result, snapshot.Events); err != nil {
		// Archival is best effort; the live snapshot already holds the
		// full terminal state.
		s.logger.ErrorContext(ctx, "archive match result failed", "match_id", snapshot.ID, "error", err)
	}
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*match.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	state, ok, err := s.matchRepo.Get(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return state, nil
}

func (s *MatchService) ListMatches(ctx context.Context) ([]*match.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	states, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].ID < states[j].ID })
	return states, nil
}

func (s *MatchService) Events(ctx context.Context, matchID string) ([]match.Event, error) {
	state, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return state.Events, nil
}

// Trace queries the explainability log for a match. Matches created
// with tracing disabled return an empty slice.
func (s *MatchService) Trace(ctx context.Context, matchID string, filter aitrace.Filter) ([]aitrace.Event, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchService.Trace")
	defer span.End()

	entry, err := s.entry(matchID)
	if err != nil {
		return nil, err
	}
	if entry.trace == nil {
		return []aitrace.Event{}, nil
	}
	return entry.trace.Query(filter), nil
}

func (s *MatchService) entry(matchID string) (*engineEntry, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	s.mu.Lock()
	entry, ok := s.engines[matchID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return entry, nil
}

// buildTactics loads a team's roster and picks a starting eleven for
// the requested formation: strongest players per position start, the
// rest sit on the bench. The shared roster map accumulates both squads.
func (s *MatchService) buildTactics(ctx context.Context, teamID, formation, posture string, roster map[string]player.Player) (tactics.Tactics, error) {
	_, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return tactics.Tactics{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return tactics.Tactics{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	squad, err := s.rosterRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return tactics.Tactics{}, fmt.Errorf("list roster: %w", err)
	}
	for _, p := range squad {
		roster[p.ID] = p
	}

	f := tactics.Formation433
	if strings.TrimSpace(formation) != "" {
		f = tactics.Formation(strings.TrimSpace(formation))
	}
	shape, ok := f.Shape()
	if !ok {
		return tactics.Tactics{}, fmt.Errorf("%w: unknown formation %s", ErrInvalidInput, f)
	}
	p := tactics.PostureBalanced
	if strings.TrimSpace(posture) != "" {
		p = tactics.Posture(strings.TrimSpace(posture))
	}
	if _, ok := tactics.AllPostures[p]; !ok {
		return tactics.Tactics{}, fmt.Errorf("%w: unknown posture %s", ErrInvalidInput, p)
	}

	lineup, bench, err := selectLineup(squad, shape)
	if err != nil {
		return tactics.Tactics{}, err
	}
	return tactics.Tactics{
		TeamID:      teamID,
		Formation:   f,
		Posture:     p,
		Lineup:      lineup,
		Substitutes: bench,
	}, nil
}

// selectLineup fills each positional slot with the highest-rated
// available players, rating ties broken by id for stable selections.
func selectLineup(squad []player.Player, shape tactics.Shape) ([]string, []string, error) {
	byPosition := map[player.Position][]player.Player{}
	for _, p := range squad {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}
	for pos := range byPosition {
		group := byPosition[pos]
		sort.Slice(group, func(i, j int) bool {
			ri, rj := roughRating(group[i]), roughRating(group[j])
			if ri != rj {
				return ri > rj
			}
			return group[i].ID < group[j].ID
		})
	}

	need := map[player.Position]int{
		player.PositionGoalkeeper: 1,
		player.PositionDefender:   shape.Defenders,
		player.PositionMidfielder: shape.Midfielders,
		player.PositionAttacker:   shape.Attackers,
	}

	var lineup []string
	picked := map[string]struct{}{}
	for _, pos := range []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionAttacker,
	} {
		group := byPosition[pos]
		if len(group) < need[pos] {
			return nil, nil, fmt.Errorf("%w: roster has %d %s players, formation needs %d",
				ErrInvalidInput, len(group), pos, need[pos])
		}
		for i := 0; i < need[pos]; i++ {
			lineup = append(lineup, group[i].ID)
			picked[group[i].ID] = struct{}{}
		}
	}

	var bench []string
	for _, p := range squad {
		if _, ok := picked[p.ID]; !ok {
			bench = append(bench, p.ID)
		}
	}
	sort.Strings(bench)
	return lineup, bench, nil
}

func roughRating(p player.Player) int {
	a := p.Attributes
	return a.Composure + a.Stamina + a.Technical + a.Finishing + a.Defending
}
