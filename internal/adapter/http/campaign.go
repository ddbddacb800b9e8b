package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adtrack/internal/core/domain"
	"adtrack/internal/core/port"
)

type targetURLRequest struct {
	URL string `json:"url"`
}

type targetURLResponse struct {
	Success      bool             `json:"success"`
	TrackingLink string           `json:"trackingLink"`
	Campaign     *domain.Campaign `json:"campaign"`
}

type trackingLinkResponse struct {
	TrackingLink string `json:"trackingLink"`
}

// handleConfigureTarget binds a campaign to a destination URL. The body is
// {"url": "..."}. It returns the tracking link and the updated campaign.
func (h *Handler) handleConfigureTarget(w http.ResponseWriter, r *http.Request) {
	var req targetURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Valid target URL required")
		return
	}
	cfg, err := h.svc.ConfigureTarget(r.Context(), chi.URLParam(r, "id"), req.URL)
	if err != nil {
		if errors.Is(err, port.ErrInvalidArgument) {
			h.writeError(w, http.StatusBadRequest, "Valid target URL required")
			return
		}
		h.writeServiceError(w, r, err, "Failed to save target URL")
		return
	}
	h.writeJSON(w, http.StatusOK, targetURLResponse{
		Success:      true,
		TrackingLink: cfg.TrackingLink,
		Campaign:     cfg.Campaign,
	})
}

func (h *Handler) handleTrackingLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.svc.TrackingLink(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("src"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch tracking link")
		return
	}
	h.writeJSON(w, http.StatusOK, trackingLinkResponse{TrackingLink: link})
}

// handleListCampaigns returns all campaigns, newest first. An optional
// status query parameter filters by status.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var filter port.CampaignFilter
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.Status(s)
		filter.Status = &st
	}
	list, err := h.svc.ListCampaigns(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch campaigns")
		return
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in domain.NewCampaign
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create campaign")
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch campaign")
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// handleUpdateCampaign applies a partial update. Counter fields in the body
// have no patch counterpart and are dropped by the decoder.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var patch domain.CampaignPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	c, err := h.svc.UpdateCampaign(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update campaign")
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}
