package httpapi

import (
	"net/http"
)

func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSettings")
	defer span.End()

	items, err := h.settingService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSetting")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateSettingRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	key := r.PathValue("key")
	view, err := h.settingService.Set(ctx, key, *req.Value, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "update setting failed", "key", key, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

type updateSettingRequest struct {
	Value *string `json:"value" validate:"required"`
}
