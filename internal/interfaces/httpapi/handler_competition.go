package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/game"
	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.competitionService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, competitionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	item, err := h.competitionService.Get(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(item))
}

func (h *Handler) ListCompetitionGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionGames")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	matchday, err := queryInt(r, "matchday")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.gameService.List(ctx, game.ListFilter{
		CompetitionID: competitionID,
		Status:        strings.TrimSpace(r.URL.Query().Get("status")),
		Matchday:      matchday,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(items))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	board, err := h.rankingService.Leaderboard(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) GetProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProgression")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	progression, err := h.rankingService.Progression(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get progression failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progression)
}

func (h *Handler) JoinCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinCompetition")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinCompetitionRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = principal.Name()
	}

	competitionID := r.PathValue("competitionID")
	participant, err := h.competitionService.Join(ctx, competitionID, principal.UserID, displayName)
	if err != nil {
		h.logger.WarnContext(ctx, "join competition failed", "competition_id", competitionID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(participant))
}

func (h *Handler) ListMyBets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyBets")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	competitionID := r.PathValue("competitionID")
	items, err := h.betService.ListMyBets(ctx, principal.UserID, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my bets failed", "competition_id", competitionID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betsToDTO(items))
}

func (h *Handler) GetMyPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPerformance")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	competitionID := r.PathValue("competitionID")
	performance, err := h.rankingService.Performance(ctx, competitionID, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get performance failed", "competition_id", competitionID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, performance)
}

func (h *Handler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCompetition")
	defer span.End()

	var req createCompetitionRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	item, err := h.competitionService.Create(ctx, usecase.CreateCompetitionInput{
		ID:           req.ID,
		Name:         req.Name,
		Sport:        req.Sport,
		Season:       req.Season,
		ProviderCode: req.ProviderCode,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		IsActive:     isActive,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create competition failed", "competition_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, competitionToDTO(item))
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGame")
	defer span.End()

	var req createGameRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	competitionID := r.PathValue("competitionID")
	item, err := h.gameService.Create(ctx, usecase.CreateGameInput{
		CompetitionID:   competitionID,
		Matchday:        req.Matchday,
		HomeTeamID:      req.HomeTeamID,
		AwayTeamID:      req.AwayTeamID,
		KickoffAt:       req.KickoffAt,
		ProviderMatchID: req.ProviderMatchID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create game failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameToDTO(item))
}

func (h *Handler) RescoreCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescoreCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	if _, err := h.competitionService.Get(ctx, competitionID); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.RescoreCompetition(ctx, competitionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "rescore competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type joinCompetitionRequest struct {
	DisplayName string `json:"display_name" validate:"max=64"`
}

type createCompetitionRequest struct {
	ID           string    `json:"id" validate:"omitempty,max=64"`
	Name         string    `json:"name" validate:"required,max=120"`
	Sport        string    `json:"sport" validate:"required,oneof=football rugby"`
	Season       string    `json:"season" validate:"max=32"`
	ProviderCode string    `json:"provider_code" validate:"omitempty,alphanum,max=16"`
	StartsAt     time.Time `json:"starts_at" validate:"required"`
	EndsAt       time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	IsActive     *bool     `json:"is_active"`
}

type createGameRequest struct {
	Matchday        int       `json:"matchday" validate:"gte=0"`
	HomeTeamID      string    `json:"home_team_id" validate:"required"`
	AwayTeamID      string    `json:"away_team_id" validate:"required,nefield=HomeTeamID"`
	KickoffAt       time.Time `json:"kickoff_at" validate:"required"`
	ProviderMatchID int64     `json:"provider_match_id" validate:"gte=0"`
}
