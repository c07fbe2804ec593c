package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/veller/retrofoot-sub002/internal/domain/team"
	"github.com/veller/retrofoot-sub002/internal/platform/logging"
	"github.com/veller/retrofoot-sub002/internal/usecase"
)

type Handler struct {
	matchService *usecase.MatchService
	roundService *usecase.RoundService
	statsService *usecase.StatsService
	teamRepo     team.Repository
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	roundService *usecase.RoundService,
	statsService *usecase.StatsService,
	teamRepo team.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService: matchService,
		roundService: roundService,
		statsService: statsService,
		teamRepo:     teamRepo,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func errInvalidBody(err error) error {
	return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type teamDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Short string `json:"short,omitempty"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamRepo.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamDTO{ID: t.ID, Name: t.Name, Short: t.Short})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
