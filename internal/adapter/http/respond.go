package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"adtrack/internal/core/port"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; the status line is already sent
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps use case errors onto API responses. internalMsg is
// shown for persistence and unexpected failures, which are also logged.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	switch {
	case errors.Is(err, port.ErrInvalidArgument):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, port.ErrCampaignNotFound):
		h.writeError(w, http.StatusNotFound, "Campaign not found")
	default:
		h.logger.Error(internalMsg,
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		h.writeError(w, http.StatusInternalServerError, internalMsg)
	}
}

func (h *Handler) writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
