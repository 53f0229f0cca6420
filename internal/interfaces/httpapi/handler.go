package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/prediction-league/internal/domain/user"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	competitionService *usecase.CompetitionService
	gameService        *usecase.GameService
	betService         *usecase.BetService
	teamService        *usecase.TeamService
	rankingService     *usecase.RankingService
	dashboardService   *usecase.DashboardService
	scoringService     *usecase.ScoringService
	settingService     *usecase.SettingService
	liveSyncService    *usecase.LiveSyncService
	jobOrchestrator    *usecase.JobOrchestratorService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	competitionService *usecase.CompetitionService,
	gameService *usecase.GameService,
	betService *usecase.BetService,
	teamService *usecase.TeamService,
	rankingService *usecase.RankingService,
	dashboardService *usecase.DashboardService,
	scoringService *usecase.ScoringService,
	settingService *usecase.SettingService,
	liveSyncService *usecase.LiveSyncService,
	jobOrchestrator *usecase.JobOrchestratorService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		competitionService: competitionService,
		gameService:        gameService,
		betService:         betService,
		teamService:        teamService,
		rankingService:     rankingService,
		dashboardService:   dashboardService,
		scoringService:     scoringService,
		settingService:     settingService,
		liveSyncService:    liveSyncService,
		jobOrchestrator:    jobOrchestrator,
		logger:             logger.Named("httpapi"),
		validator:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

// decodeJSON reads a strict JSON body into dst and runs struct validation. An empty
// body is accepted when allowEmpty is set.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any, allowEmpty bool) error {
	decoder := sonic.ConfigStd.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
