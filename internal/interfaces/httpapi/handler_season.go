package httpapi

import (
	"net/http"
	"strconv"

	"github.com/veller/retrofoot-sub002/internal/domain/season"
)

type playerSeasonDTO struct {
	PlayerID string             `json:"player_id"`
	Name     string             `json:"name"`
	TeamID   string             `json:"team_id"`
	Position string             `json:"position"`
	Stats    season.PlayerStats `json:"stats"`
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	rows, err := h.statsService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	rows, err := h.statsService.TopScorers(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list top scorers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) GetPlayerSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSeason")
	defer span.End()

	playerID := r.PathValue("playerID")
	item, err := h.statsService.PlayerSeasonStats(ctx, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerSeasonDTO{
		PlayerID: item.Player.ID,
		Name:     item.Player.FullName(),
		TeamID:   item.Player.TeamID,
		Position: string(item.Player.Position),
		Stats:    item.Stats,
	})
}
