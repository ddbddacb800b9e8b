package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adtrack/internal/core/port"
)

// handleTrackingClick counts a visit to a tracking link and redirects to
// the campaign target with the correlation parameter appended. Unknown or
// untargeted campaigns get 404 "Tracking link invalid"; a click that could
// not be persisted gets 500 and no redirect. The redirect is a 302 so every
// future visit reaches this handler again.
func (h *Handler) handleTrackingClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	src := r.URL.Query().Get("src")

	location, err := h.svc.RegisterClick(r.Context(), id, src)
	if errors.Is(err, port.ErrCampaignNotFound) {
		h.writeText(w, http.StatusNotFound, "Tracking link invalid")
		return
	}
	if err != nil {
		h.logger.Error("tracking click error", slog.String("campaign_id", id), slog.Any("error", err))
		h.writeText(w, http.StatusInternalServerError, "Error in tracking link")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, location, http.StatusFound)
}
