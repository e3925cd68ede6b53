// internal/server/handlers/radar.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Roach1197/The-Radar/internal/domain/radar"
)

// RadarHandler handles sweep-related HTTP requests
type RadarHandler struct {
	sweeper radar.Sweeper
}

// NewRadarHandler creates a new radar handler
func NewRadarHandler(sweeper radar.Sweeper) *RadarHandler {
	return &RadarHandler{
		sweeper: sweeper,
	}
}

// Sweep runs a single-topic sweep for the domain query parameter
func (h *RadarHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")

	result, err := h.sweeper.Sweep(r.Context(), domain)
	if err != nil {
		if errors.Is(err, radar.ErrInvalidTopic) {
			respondWithError(w, http.StatusBadRequest, "Missing or empty domain parameter", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to run sweep", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// MultiSweep runs a sweep across comma-delimited topics in the domains
// query parameter
func (h *RadarHandler) MultiSweep(w http.ResponseWriter, r *http.Request) {
	domains := r.URL.Query().Get("domains")

	result, err := h.sweeper.MultiSweep(r.Context(), domains)
	if err != nil {
		if errors.Is(err, radar.ErrInvalidTopic) {
			respondWithError(w, http.StatusBadRequest, "Missing or empty domains parameter", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to run multi-sweep", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// DeepSweep runs a deep sweep for the domain query parameter
func (h *RadarHandler) DeepSweep(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")

	result, err := h.sweeper.DeepSweep(r.Context(), domain)
	if err != nil {
		if errors.Is(err, radar.ErrInvalidTopic) {
			respondWithError(w, http.StatusBadRequest, "Missing or empty domain parameter", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to run deep sweep", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil {
		response["detail"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
