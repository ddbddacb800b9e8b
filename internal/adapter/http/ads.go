package httpadapter

import (
	"encoding/json"
	"net/http"

	"adtrack/internal/core/domain"
)

type publishResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	CampaignID string `json:"campaignId"`
	AdID       string `json:"adId"`
}

// handlePublish saves a creative as a live campaign and an ad. Posting to
// the social platform itself is handled outside this service.
func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	var cr domain.Creative
	if err := json.NewDecoder(r.Body).Decode(&cr); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	res, err := h.svc.Publish(r.Context(), cr)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to publish")
		return
	}
	h.writeJSON(w, http.StatusOK, publishResponse{
		Success:    true,
		Message:    "Saved Successfully",
		CampaignID: res.Campaign.ID,
		AdID:       res.Ad.ID,
	})
}

func (h *Handler) handleListAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.svc.ListAds(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch ads")
		return
	}
	h.writeJSON(w, http.StatusOK, ads)
}
