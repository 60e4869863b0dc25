package api

import (
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sarthi-tvs/callagent/internal/callflow"
)

// RouterConfig holds settings for the API router.
// Passed from main.go so the router can configure CORS and auth from env vars.
type RouterConfig struct {
	// AdminAPIKey is the key that must be provided in X-API-Key or Authorization: Bearer <key>
	// for the /v1 cache administration routes. If empty, auth middleware is
	// skipped (development mode).
	AdminAPIKey string

	// CorsAllowedOrigins is a comma-separated list of allowed origins.
	// If empty, defaults to "*" (development mode).
	CorsAllowedOrigins string
}

func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (applied to all routes including /health)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// CORS: restrict origins when configured, otherwise allow all (dev mode)
	allowedOrigins := []string{"*"}
	if cfg.CorsAllowedOrigins != "" {
		origins := strings.Split(cfg.CorsAllowedOrigins, ",")
		trimmed := make([]string, 0, len(origins))
		for _, o := range origins {
			if s := strings.TrimSpace(o); s != "" {
				trimmed = append(trimmed, s)
			}
		}
		if len(trimmed) > 0 {
			allowedOrigins = trimmed
		}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Conversation webhooks — Twilio posts each turn here. Signature
	// validation is handled upstream, not by this service.
	r.Post(callflow.RouteGreeting, h.Greeting)
	r.Post(callflow.RouteConfirmVehicle, h.ConfirmVehicle)
	r.Post(callflow.RouteServiceDue, h.ServiceDue)
	r.Post(callflow.RouteRescheduleConfirm, h.RescheduleConfirm)
	r.Post(callflow.RouteRescheduleDate, h.RescheduleDate)
	r.Post(callflow.RouteOfferServices, h.OfferServices)
	r.Post(callflow.RouteHandleServices, h.HandleServices)

	// Health and status — public, no auth required
	r.Get("/health", h.Health)
	r.Get("/status", h.Status)
	r.Post("/status", h.Status)

	// Synthesized audio artifacts referenced by Play verbs
	r.Get("/static/audio_cache/{filename}", h.ServeAudio)

	// Cache administration — protected by API key auth
	r.Route("/v1", func(r chi.Router) {
		if cfg.AdminAPIKey != "" {
			r.Use(APIKeyAuth(cfg.AdminAPIKey))
		}

		r.Get("/cache", h.CacheInfo)
		r.Delete("/cache", h.ClearCache)
	})

	return r
}
