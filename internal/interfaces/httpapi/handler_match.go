package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/veller/retrofoot-sub002/internal/domain/aitrace"
	"github.com/veller/retrofoot-sub002/internal/domain/match"
	"github.com/veller/retrofoot-sub002/internal/usecase"
)

type createMatchRequest struct {
	HomeTeamID    string `json:"home_team_id" validate:"required"`
	AwayTeamID    string `json:"away_team_id" validate:"required"`
	Seed          *int64 `json:"seed,omitempty"`
	HomePosture   string `json:"home_posture" validate:"omitempty,oneof=defensive balanced attacking"`
	AwayPosture   string `json:"away_posture" validate:"omitempty,oneof=defensive balanced attacking"`
	HomeFormation string `json:"home_formation"`
	AwayFormation string `json:"away_formation"`
}

type advanceMatchRequest struct {
	Minutes int `json:"minutes" validate:"required,min=1,max=200"`
}

type simulateRoundRequest struct {
	Pairings   []usecase.RoundPairing `json:"pairings" validate:"required,min=1,dive"`
	MaxWorkers int                    `json:"max_workers" validate:"omitempty,min=1,max=64"`
}

type teamStateDTO struct {
	TeamID   string             `json:"team_id"`
	Lineup   []string           `json:"lineup"`
	Bench    []string           `json:"bench"`
	SubsUsed int                `json:"subs_used"`
	Energy   map[string]float64 `json:"energy"`
	Bookings map[string]int     `json:"bookings,omitempty"`
	SentOff  []string           `json:"sent_off,omitempty"`
}

type matchDTO struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	Minute     int          `json:"minute"`
	Stoppage   int          `json:"stoppage,omitempty"`
	HomeScore  int          `json:"home_score"`
	AwayScore  int          `json:"away_score"`
	Possession string       `json:"possession"`
	Home       teamStateDTO `json:"home"`
	Away       teamStateDTO `json:"away"`
	EventCount int          `json:"event_count"`
}

type matchEventDTO struct {
	Minute         int    `json:"minute"`
	Type           string `json:"type"`
	Team           string `json:"team"`
	PlayerID       string `json:"player_id,omitempty"`
	AssistPlayerID string `json:"assist_player_id,omitempty"`
	Description    string `json:"description,omitempty"`
}

func matchToDTO(state *match.State) matchDTO {
	return matchDTO{
		ID:         state.ID,
		Status:     state.Status,
		Minute:     state.Minute,
		Stoppage:   state.Stoppage,
		HomeScore:  state.HomeScore,
		AwayScore:  state.AwayScore,
		Possession: string(state.Possession),
		Home:       teamStateToDTO(state.Home),
		Away:       teamStateToDTO(state.Away),
		EventCount: len(state.Events),
	}
}

func teamStateToDTO(ts match.TeamState) teamStateDTO {
	sentOff := make([]string, 0, len(ts.SentOff))
	for id, off := range ts.SentOff {
		if off {
			sentOff = append(sentOff, id)
		}
	}

	return teamStateDTO{
		TeamID:   ts.TeamID,
		Lineup:   append([]string(nil), ts.Lineup...),
		Bench:    append([]string(nil), ts.Bench...),
		SubsUsed: ts.SubsUsed,
		Energy:   ts.Energy,
		Bookings: ts.Bookings,
		SentOff:  sentOff,
	}
}

func eventToDTO(e match.Event) matchEventDTO {
	return matchEventDTO{
		Minute:         e.Minute,
		Type:           string(e.Type),
		Team:           string(e.Team),
		PlayerID:       e.PlayerID,
		AssistPlayerID: e.AssistPlayerID,
		Description:    e.Description,
	}
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, errInvalidBody(err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		Seed:          req.Seed,
		HomePosture:   req.HomePosture,
		AwayPosture:   req.AwayPosture,
		HomeFormation: req.HomeFormation,
		AwayFormation: req.AwayFormation,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed",
			"home_team", req.HomeTeamID, "away_team", req.AwayTeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(state))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	states, err := h.matchService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(states))
	for _, state := range states {
		items = append(items, matchToDTO(state))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	state, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(state))
}

func (h *Handler) AdvanceMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceMatch")
	defer span.End()

	var req advanceMatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, errInvalidBody(err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	state, err := h.matchService.Advance(ctx, matchID, req.Minutes)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(state))
}

func (h *Handler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	state, err := h.matchService.Complete(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(state))
}

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchEvents")
	defer span.End()

	matchID := r.PathValue("matchID")
	events, err := h.matchService.Events(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]matchEventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, eventToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchTrace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchTrace")
	defer span.End()

	filter := aitrace.Filter{
		Type: aitrace.EventType(strings.TrimSpace(r.URL.Query().Get("type"))),
		Team: strings.TrimSpace(r.URL.Query().Get("team")),
	}
	if raw := r.URL.Query().Get("minute_min"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.MinuteMin = v
		}
	}
	if raw := r.URL.Query().Get("minute_max"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.MinuteMax = v
		}
	}

	matchID := r.PathValue("matchID")
	events, err := h.matchService.Trace(ctx, matchID, filter)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, events)
}

func (h *Handler) SimulateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateRound")
	defer span.End()

	var req simulateRoundRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, errInvalidBody(err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.roundService.SimulateRound(ctx, usecase.RoundInput{
		Pairings:   req.Pairings,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "simulate round failed", "pairings", len(req.Pairings), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
