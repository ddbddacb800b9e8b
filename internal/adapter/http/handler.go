package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"adtrack/internal/core/port"
)

// Options configures optional parts of the HTTP surface.
type Options struct {
	// WebhookSecret enables HMAC verification of order webhooks.
	WebhookSecret string
	// Metrics is served on GET /metrics when set.
	Metrics http.Handler
}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds a use case to execute business logic and a logger for structured
// logging. Routes are registered on a chi.Router.
type Handler struct {
	svc           port.TrackingUseCase
	logger        *slog.Logger
	router        chi.Router
	webhookSecret []byte
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.TrackingUseCase, logger *slog.Logger, opts Options) *Handler {
	h := &Handler{svc: svc, logger: logger}
	if opts.WebhookSecret != "" {
		h.webhookSecret = []byte(opts.WebhookSecret)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, h.accessLog, middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/c/{id}", h.handleTrackingClick)

	r.Route("/api", func(r chi.Router) {
		r.Get("/campaigns", h.handleListCampaigns)
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Patch("/campaigns/{id}", h.handleUpdateCampaign)
		r.Post("/campaigns/{id}/target-url", h.handleConfigureTarget)
		r.Get("/campaigns/{id}/tracking-link", h.handleTrackingLink)

		r.Post("/publish", h.handlePublish)
		r.Get("/ads", h.handleListAds)

		r.Post("/shopify/order-webhook", h.handleOrderWebhook)
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		h.logger.LogAttrs(r.Context(), level, "http request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
