package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/veller/retrofoot-sub002/internal/domain/simulation"
	"github.com/veller/retrofoot-sub002/internal/infrastructure/repository/memory"
	"github.com/veller/retrofoot-sub002/internal/platform/logging"
	"github.com/veller/retrofoot-sub002/internal/usecase"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	matchRepo := memory.NewMatchRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	archive := memory.NewResultArchive()
	logger := logging.NewNop()

	matchService := usecase.NewMatchService(
		matchRepo,
		playerRepo,
		teamRepo,
		archive,
		simulation.DefaultParams(),
		5000,
		staticIDGenerator{id: "match-abc"},
		logger,
	)
	roundService := usecase.NewRoundService(matchService, 2, logger)
	statsService := usecase.NewStatsService(matchRepo, playerRepo, archive, nil)

	handler := NewHandler(matchService, roundService, statsService, teamRepo, logger)
	return NewRouter(handler, logger, []string{"*"})
}

func doJSONRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal %s %s response: %v", method, path, err)
	}
	return rec, envelope
}

func TestRouter_MatchLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSONRequest(t, router, http.MethodPost, "/v1/matches",
		`{"home_team_id":"redhill-rovers","away_team_id":"northgate-united","seed":42}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create match status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope)
	}
	if data["id"] != "match-abc" {
		t.Fatalf("unexpected match id: %v", data["id"])
	}
	if data["status"] != "IN_PROGRESS" {
		t.Fatalf("unexpected status: %v", data["status"])
	}

	rec, envelope = doJSONRequest(t, router, http.MethodPost, "/v1/matches/match-abc/advance", `{"minutes":20}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("advance status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	data = envelope["data"].(map[string]any)
	if minute, _ := data["minute"].(float64); minute != 20 {
		t.Fatalf("expected minute=20, got %v", data["minute"])
	}

	rec, envelope = doJSONRequest(t, router, http.MethodPost, "/v1/matches/match-abc/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	data = envelope["data"].(map[string]any)
	if data["status"] != "FULL_TIME" {
		t.Fatalf("expected FULL_TIME, got %v", data["status"])
	}

	rec, envelope = doJSONRequest(t, router, http.MethodGet, "/v1/matches/match-abc/events", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("events status: got=%d", rec.Code)
	}
	events, ok := envelope["data"].([]any)
	if !ok || len(events) < 2 {
		t.Fatalf("expected a populated event timeline, got %v", envelope["data"])
	}
	first := events[0].(map[string]any)
	if first["type"] != "kickoff" {
		t.Fatalf("expected kickoff first, got %v", first["type"])
	}
	last := events[len(events)-1].(map[string]any)
	if last["type"] != "full_time" {
		t.Fatalf("expected full_time last, got %v", last["type"])
	}

	rec, envelope = doJSONRequest(t, router, http.MethodGet, "/v1/matches/match-abc/trace?type=event_probability", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("trace status: got=%d", rec.Code)
	}
	traces, ok := envelope["data"].([]any)
	if !ok || len(traces) == 0 {
		t.Fatalf("expected trace entries, got %v", envelope["data"])
	}

	rec, envelope = doJSONRequest(t, router, http.MethodGet, "/v1/standings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("standings status: got=%d", rec.Code)
	}
	rows, ok := envelope["data"].([]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("expected 2 standings rows, got %v", envelope["data"])
	}
}

func TestRouter_CreateMatchValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSONRequest(t, router, http.MethodPost, "/v1/matches",
		`{"home_team_id":"redhill-rovers"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	errorObj := envelope["error"].(map[string]any)
	if errorObj["status"] != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error status: %v", errorObj["status"])
	}

	rec, _ = doJSONRequest(t, router, http.MethodPost, "/v1/matches",
		`{"home_team_id":"redhill-rovers","away_team_id":"northgate-united","home_posture":"reckless"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad posture, got %d", rec.Code)
	}
}

func TestRouter_UnknownMatchIs404(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSONRequest(t, router, http.MethodGet, "/v1/matches/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	errorObj := envelope["error"].(map[string]any)
	if errorObj["status"] != "NOT_FOUND" {
		t.Fatalf("unexpected error status: %v", errorObj["status"])
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSONRequest(t, router, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := envelope["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", data)
	}
}

func TestRouter_SimulateRound(t *testing.T) {
	matchRepo := memory.NewMatchRepository()
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	archive := memory.NewResultArchive()
	logger := logging.NewNop()

	matchService := usecase.NewMatchService(
		matchRepo, playerRepo, teamRepo, archive,
		simulation.DefaultParams(), 0,
		&uniqueIDGenerator{}, logger,
	)
	roundService := usecase.NewRoundService(matchService, 2, logger)
	statsService := usecase.NewStatsService(matchRepo, playerRepo, archive, nil)
	handler := NewHandler(matchService, roundService, statsService, teamRepo, logger)
	router := NewRouter(handler, logger, nil)

	rec, envelope := doJSONRequest(t, router, http.MethodPost, "/v1/rounds",
		`{"pairings":[
			{"home_team_id":"redhill-rovers","away_team_id":"northgate-united","seed":1},
			{"home_team_id":"eastbourne-athletic","away_team_id":"whitefield-town","seed":2}
		]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("round status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	data := envelope["data"].(map[string]any)
	if count, _ := data["success_count"].(float64); count != 2 {
		t.Fatalf("expected success_count=2, got %v", data["success_count"])
	}
}

type uniqueIDGenerator struct {
	n atomic.Int32
}

func (g *uniqueIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("round-match-%d", g.n.Add(1)), nil
}
