package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/etnz/attribution"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"service": "rca",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleBenchmarks returns the default benchmark registry.
func (s *Server) handleBenchmarks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, attribution.DefaultBenchmarks())
}

// handleAnalysis runs a full attribution analysis over uploaded files. The
// request is multipart form data with a required "weights" file and an
// optional "nav" file, both in the snapshot CSV format.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	const maxUpload = 10 << 20 // generous for CSV snapshots
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		s.writeError(w, http.StatusBadRequest, "expected multipart form data: "+err.Error())
		return
	}

	weights, _, err := r.FormFile("weights")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing weights file")
		return
	}
	defer weights.Close()
	holdings, err := attribution.ReadHoldingsCSV(weights)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nav := attribution.NewOverrides()
	if navFile, _, err := r.FormFile("nav"); err == nil {
		defer navFile.Close()
		if nav, err = attribution.ReadOverridesCSV(navFile); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	cache := attribution.NewPriceCache()
	if s.cachePath != "" {
		cache = attribution.LoadPriceCache(s.cachePath)
	}

	report, err := attribution.Analyze(holdings, nav, cache, attribution.Request{Source: s.source})
	if err != nil {
		var unavailable *attribution.PriceUnavailableError
		switch {
		case errors.As(err, &unavailable):
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, attribution.ErrInvalidInput):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.log.Error().Err(err).Msg("analysis failed")
			s.writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	if s.cachePath != "" {
		if err := cache.Save(s.cachePath); err != nil {
			s.log.Warn().Err(err).Msg("could not persist price cache")
		}
	}

	s.writeJSON(w, http.StatusOK, report)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
