package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/prediction-league/internal/usecase"
)

func (h *Handler) RunBootstrapJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBootstrapJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req internalJobRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.jobOrchestrator.Bootstrap(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "run bootstrap job failed", "competition_id", req.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// RunSyncLiveJob is the queue callback. It records the dispatch outcome either way.
func (h *Handler) RunSyncLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLiveJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req internalJobRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := req.toInput()
	result, err := h.jobOrchestrator.RunLiveSync(ctx, input)
	h.jobOrchestrator.RecordCompletion(ctx, input, err)
	if err != nil {
		h.logger.WarnContext(ctx, "run sync live job failed", "competition_id", input.CompetitionID, "dispatch_id", input.DispatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// RunLiveSync is the admin trigger. It never schedules follow-up jobs.
func (h *Handler) RunLiveSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLiveSync")
	defer span.End()

	if h.liveSyncService == nil {
		writeError(ctx, w, fmt.Errorf("%w: live sync is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req adminLiveSyncRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.liveSyncService.Run(ctx, usecase.LiveSyncInput{
		CompetitionID: strings.TrimSpace(req.CompetitionID),
		DryRun:        req.DryRun,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "admin live sync failed", "competition_id", req.CompetitionID, "dry_run", req.DryRun, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) ListJobDispatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJobDispatches")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeSuccess(ctx, w, http.StatusOK, []dispatchEventDTO{})
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	items, err := h.jobOrchestrator.ListDispatches(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list job dispatches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]dispatchEventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dispatchEventToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

type internalJobRequest struct {
	CompetitionID string `json:"competition_id" validate:"max=64"`
	DispatchID    string `json:"dispatch_id" validate:"max=128"`
}

func (r internalJobRequest) toInput() usecase.JobSyncInput {
	return usecase.JobSyncInput{
		CompetitionID: strings.TrimSpace(r.CompetitionID),
		DispatchID:    strings.TrimSpace(r.DispatchID),
	}
}

type adminLiveSyncRequest struct {
	CompetitionID string `json:"competition_id" validate:"max=64"`
	DryRun        bool   `json:"dry_run"`
}
