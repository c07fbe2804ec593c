package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/veller/retrofoot-sub002/internal/platform/logging"
)

type RoundPairing struct {
	HomeTeamID string `json:"home_team_id" validate:"required"`
	AwayTeamID string `json:"away_team_id" validate:"required"`
	Seed       *int64 `json:"seed,omitempty"`
}

type RoundInput struct {
	Pairings   []RoundPairing
	MaxWorkers int
}

type RoundResult struct {
	MatchCount   int               `json:"match_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	WorkerCount  int               `json:"worker_count"`
	Matches      []RoundMatchEntry `json:"matches"`
}

type RoundMatchEntry struct {
	MatchID    string `json:"match_id,omitempty"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	Status     string `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	roundStatusSuccess = "success"
	roundStatusFailed  = "failed"
)

// RoundService simulates a whole round of fixtures concurrently. Each
// match keeps its own RNG stream, so parallel execution never changes
// an individual result.
type RoundService struct {
	matches        *MatchService
	defaultWorkers int
	logger         *logging.Logger
}

func NewRoundService(matches *MatchService, defaultWorkers int, logger *logging.Logger) *RoundService {
	if defaultWorkers <= 0 {
		defaultWorkers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RoundService{
		matches:        matches,
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

func (s *RoundService) SimulateRound(ctx context.Context, input RoundInput) (RoundResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.SimulateRound")
	defer span.End()

	if len(input.Pairings) == 0 {
		return RoundResult{}, fmt.Errorf("%w: at least one pairing is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(input.Pairings)*2)
	for _, pairing := range input.Pairings {
		for _, teamID := range []string{pairing.HomeTeamID, pairing.AwayTeamID} {
			if _, dup := seen[teamID]; dup {
				return RoundResult{}, fmt.Errorf("%w: team %s appears twice in the round", ErrInvalidInput, teamID)
			}
			seen[teamID] = struct{}{}
		}
	}

	workerCount := normalizeRoundWorkerCount(input.MaxWorkers, s.defaultWorkers, len(input.Pairings))
	result := RoundResult{
		MatchCount:  len(input.Pairings),
		WorkerCount: workerCount,
		Matches:     make([]RoundMatchEntry, 0, len(input.Pairings)),
	}

	results := make(chan RoundMatchEntry, len(input.Pairings))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RoundResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, pairing := range input.Pairings {
		pairing := pairing
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			entry := s.playFixture(ctx, pairing)
			entry.DurationMs = time.Since(start).Milliseconds()

			if entry.Status == roundStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- entry
		}); err != nil {
			workers.Done()
			return RoundResult{}, fmt.Errorf("submit fixture to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for entry := range results {
		result.Matches = append(result.Matches, entry)
	}
	sort.SliceStable(result.Matches, func(i, j int) bool {
		if result.Matches[i].HomeTeamID != result.Matches[j].HomeTeamID {
			return result.Matches[i].HomeTeamID < result.Matches[j].HomeTeamID
		}
		return result.Matches[i].AwayTeamID < result.Matches[j].AwayTeamID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "round simulated",
		"matches", result.MatchCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)
	return result, nil
}

func (s *RoundService) playFixture(ctx context.Context, pairing RoundPairing) RoundMatchEntry {
	entry := RoundMatchEntry{
		HomeTeamID: pairing.HomeTeamID,
		AwayTeamID: pairing.AwayTeamID,
	}

	state, err := s.matches.CreateMatch(ctx, CreateMatchInput{
		HomeTeamID: pairing.HomeTeamID,
		AwayTeamID: pairing.AwayTeamID,
		Seed:       pairing.Seed,
	})
	if err != nil {
		entry.Status = roundStatusFailed
		entry.Message = err.Error()
		return entry
	}
	entry.MatchID = state.ID

	final, err := s.matches.Complete(ctx, state.ID)
	if err != nil {
		entry.Status = roundStatusFailed
		entry.Message = err.Error()
		return entry
	}

	entry.HomeScore = final.HomeScore
	entry.AwayScore = final.AwayScore
	entry.Status = roundStatusSuccess
	return entry
}

func normalizeRoundWorkerCount(requested, fallback, taskCount int) int {
	count := requested
	if count <= 0 {
		count = fallback
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
