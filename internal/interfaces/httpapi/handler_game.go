package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	item, err := h.gameService.Get(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(item))
}

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBet")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req placeBetRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := r.PathValue("gameID")
	item, err := h.betService.PlaceBet(ctx, usecase.PlaceBetInput{
		UserID:    principal.UserID,
		GameID:    gameID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place bet failed", "game_id", gameID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betToDTO(item))
}

func (h *Handler) ListGameBets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameBets")
	defer span.End()

	gameID := r.PathValue("gameID")
	items, err := h.betService.ListGameBets(ctx, gameID, time.Now())
	if err != nil {
		h.logger.WarnContext(ctx, "list game bets failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betsToDTO(items))
}

func (h *Handler) SetGameResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetGameResult")
	defer span.End()

	var req setResultRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := r.PathValue("gameID")
	item, scored, err := h.gameService.SetResult(ctx, usecase.SetResultInput{
		GameID:    gameID,
		HomeScore: *req.HomeScore,
		AwayScore: *req.AwayScore,
		Status:    req.Status,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set game result failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameResultDTO{Game: gameToDTO(item), Scoring: scored})
}

type placeBetRequest struct {
	HomeScore *int `json:"home_score" validate:"required,gte=0,lte=200"`
	AwayScore *int `json:"away_score" validate:"required,gte=0,lte=200"`
}

type setResultRequest struct {
	HomeScore *int   `json:"home_score" validate:"required,gte=0,lte=200"`
	AwayScore *int   `json:"away_score" validate:"required,gte=0,lte=200"`
	Status    string `json:"status" validate:"max=16"`
}
