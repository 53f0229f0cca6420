package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	sport := strings.TrimSpace(r.URL.Query().Get("sport"))
	items, err := h.teamService.List(ctx, sport)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := r.PathValue("teamID")
	item, err := h.teamService.Update(ctx, teamID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": teamID})
}

// MatchTeams suggests local teams for raw provider names without writing anything.
func (h *Handler) MatchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MatchTeams")
	defer span.End()

	var req matchTeamsRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.teamService.SuggestMatches(ctx, req.Sport, req.Names, req.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "match teams failed", "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, results)
}

type teamRequest struct {
	Name           string   `json:"name" validate:"required,max=120"`
	ShortName      string   `json:"short_name" validate:"max=32"`
	Sport          string   `json:"sport" validate:"required,oneof=football rugby"`
	Country        string   `json:"country" validate:"max=64"`
	ProviderTeamID int64    `json:"provider_team_id" validate:"gte=0"`
	Aliases        []string `json:"aliases" validate:"max=20,dive,required,max=120"`
}

func (r teamRequest) toInput() usecase.TeamInput {
	return usecase.TeamInput{
		Name:           r.Name,
		ShortName:      r.ShortName,
		Sport:          r.Sport,
		Country:        r.Country,
		ProviderTeamID: r.ProviderTeamID,
		Aliases:        r.Aliases,
	}
}

type matchTeamsRequest struct {
	Sport string   `json:"sport" validate:"required,oneof=football rugby"`
	Names []string `json:"names" validate:"required,min=1,max=50,dive,required,max=120"`
	Limit int      `json:"limit" validate:"gte=0,lte=10"`
}
