package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"

	"github.com/veller/retrofoot-sub002/external/scoutfeed"
	"github.com/veller/retrofoot-sub002/internal/config"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/domain/player"
	"github.com/veller/retrofoot-sub002/internal/domain/simulation"
	"github.com/veller/retrofoot-sub002/internal/domain/team"
	"github.com/veller/retrofoot-sub002/internal/infrastructure/repository/memory"
	"github.com/veller/retrofoot-sub002/internal/infrastructure/repository/postgres"
	"github.com/veller/retrofoot-sub002/internal/interfaces/httpapi"
	"github.com/veller/retrofoot-sub002/internal/platform/cache"
	idgen "github.com/veller/retrofoot-sub002/internal/platform/id"
	"github.com/veller/retrofoot-sub002/internal/platform/logging"
	"github.com/veller/retrofoot-sub002/internal/platform/resilience"
	"github.com/veller/retrofoot-sub002/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	teamRepo, playerRepo := buildRosterRepositories(cfg, logger)
	matchRepo := memory.NewMatchRepository()

	archive, db, err := buildResultArchive(cfg)
	if err != nil {
		return nil, err
	}

	params, err := buildSimulationParams(cfg)
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	matchSvc := usecase.NewMatchService(
		matchRepo,
		playerRepo,
		teamRepo,
		archive,
		params,
		cfg.SimTraceCapacity,
		idgen.NewRandomGenerator(),
		logger,
	)
	roundSvc := usecase.NewRoundService(matchSvc, cfg.SimRoundWorkers, logger)
	statsSvc := usecase.NewStatsService(matchRepo, playerRepo, archive, store)

	handler := httpapi.NewHandler(matchSvc, roundSvc, statsSvc, teamRepo, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if db != nil {
		server.RegisterOnShutdown(func() { _ = db.Close() })
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildRosterRepositories prefers the scouting feed when it is enabled
// and reachable; otherwise the bundled seed data keeps the service
// usable offline.
func buildRosterRepositories(cfg config.Config, logger *logging.Logger) (team.Repository, player.Repository) {
	if cfg.ScoutFeedEnabled {
		client := scoutfeed.NewClient(scoutfeed.ClientConfig{
			BaseURL:    cfg.ScoutFeedBaseURL,
			Token:      cfg.ScoutFeedToken,
			Timeout:    cfg.ScoutFeedTimeout,
			MaxRetries: cfg.ScoutFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ScoutFeedCircuitEnabled,
				FailureThreshold: cfg.ScoutFeedCircuitFailureCount,
				OpenTimeout:      cfg.ScoutFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ScoutFeedCircuitHalfOpenMax,
			},
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ScoutFeedTimeout)
		defer cancel()

		teams, players, err := client.FetchTeams(ctx)
		if err == nil && len(teams) >= 2 {
			logger.Info("rosters loaded from scouting feed", "teams", len(teams), "players", len(players))
			return memory.NewTeamRepository(teams), memory.NewPlayerRepository(players)
		}
		logger.Warn("scouting feed unavailable, using bundled rosters", "error", err, "teams", len(teams))
	}

	return memory.NewTeamRepository(memory.SeedTeams()), memory.NewPlayerRepository(memory.SeedPlayers())
}

func buildResultArchive(cfg config.Config) (match.ResultArchive, *sqlx.DB, error) {
	if !cfg.DBEnabled {
		return memory.NewResultArchive(), nil, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect result database: %w", err)
	}

	return postgres.NewResultArchive(db), db, nil
}

func buildSimulationParams(cfg config.Config) (simulation.Params, error) {
	params := simulation.DefaultParams()
	params.MaxSubstitutions = cfg.SimMaxSubstitutions
	params.FatigueThreshold = cfg.SimFatigueThreshold
	params.ProtectLeadMinute = cfg.SimProtectLeadMinute
	params.ProtectLeadMargin = cfg.SimProtectLeadMargin
	params.TacticalDelta = cfg.SimTacticalDelta
	params.BaseTriggerChance = cfg.SimBaseTriggerChance

	if err := params.Validate(); err != nil {
		return simulation.Params{}, fmt.Errorf("simulation params from config: %w", err)
	}
	return params, nil
}
