package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sarthi-tvs/callagent/internal/callflow"
	"github.com/sarthi-tvs/callagent/internal/models"
	"github.com/sarthi-tvs/callagent/internal/storage"
	"github.com/sarthi-tvs/callagent/internal/ttscache"
)

// Handler serves everything that is not a conversation turn: health and
// status probes, the synthesized audio artifacts, and cache administration.
// The embedded Flow contributes the webhook handlers.
type Handler struct {
	*callflow.Flow

	cache     *ttscache.Cache
	store     storage.Store
	ttsStatus string
}

func NewHandler(flow *callflow.Flow, cache *ttscache.Cache, store storage.Store, ttsStatus string) *Handler {
	return &Handler{
		Flow:      flow,
		cache:     cache,
		store:     store,
		ttsStatus: ttsStatus,
	}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Time:      time.Now().UTC().Format(time.RFC3339),
		TTSStatus: h.ttsStatus,
	})
}

// Status handles GET|POST /status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.StatusResponse{
		Status:  "ok",
		Service: "callagent",
		Version: "1.0",
	})
}

// ServeAudio handles GET /static/audio_cache/{filename}. Play verbs in the
// call markup reference these URLs; Twilio fetches them when the prompt is
// spoken.
func (h *Handler) ServeAudio(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		respondError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	data, err := h.store.Get(r.Context(), filename)
	if err != nil {
		respondError(w, http.StatusNotFound, "Audio not found")
		return
	}

	// Artifacts are content-addressed, so the bytes behind a name never change.
	w.Header().Set("Content-Type", audioContentType(filename))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// CacheInfo handles GET /v1/cache
func (h *Handler) CacheInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.cache.Info(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read cache info")
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// ClearCache handles DELETE /v1/cache
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	cleared, err := h.cache.Clear(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear cache")
		return
	}

	respondJSON(w, http.StatusOK, models.ClearCacheResponse{Cleared: cleared})
}

func audioContentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
