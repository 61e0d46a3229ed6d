package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/jobrunner/nimbus/internal/domain"
	"github.com/jobrunner/nimbus/internal/ports/input"
)

// Error payloads for the cloud-cover endpoint. All responses are HTTP 200
// with an "error" field instead of distinct status codes; clients depend on
// that convention.
const (
	errNoRecentFiles  = "No recent GOES files found"
	errDownloadFailed = "Failed to download GOES file"
	errProcessFailed  = "Failed to process GOES file"
	errNoValidPixels  = "No valid pixels to classify"
)

// handleCloudCover runs the full pipeline and reports the cloud fraction.
func (s *Server) handleCloudCover(w http.ResponseWriter, r *http.Request) {
	result, err := s.cloudCover.CloudCover(r.Context())
	if err != nil {
		s.writeCloudCoverError(w, err)
		return
	}

	if math.IsNaN(result.Percent) {
		// A scan with zero valid pixels is a reportable edge value, not a
		// zero and not a failure; JSON has no NaN, so it travels as null.
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"cloud_cover_percent": nil,
			"source_file":         result.SourcePath,
			"error":               errNoValidPixels,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"cloud_cover_percent": math.Round(result.Percent*100) / 100,
		"source_file":         result.SourcePath,
	})
}

// handleCloudCoverPlot renders the IR band or cloud mask as a PNG.
func (s *Server) handleCloudCoverPlot(w http.ResponseWriter, r *http.Request) {
	kind := input.PlotKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = input.PlotBand
	}

	png, err := s.cloudCover.RenderPlot(r.Context(), kind)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error": "unknown plot kind, use band or mask",
			})
			return
		}
		s.writeCloudCoverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// writeCloudCoverError maps pipeline failures onto the uniform-200 payloads.
func (s *Server) writeCloudCoverError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoRecentScan):
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"error": errNoRecentFiles})
	case errors.Is(err, domain.ErrFetchFailed):
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"error": errDownloadFailed})
	default:
		s.logger.Error("cloud cover pipeline failed", "error", err)
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"error": errProcessFailed})
	}
}

// handleHealth confirms the API is running.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLiveness returns liveness status.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsHealthy(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
}

// handleReadiness returns readiness status.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if s.health.IsReady(r.Context()) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	} else {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
}

// handleOpenAPI returns the OpenAPI specification.
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	spec, err := getOpenAPIJSON()
	if err != nil {
		s.logger.Error("failed to get OpenAPI spec", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to load OpenAPI specification",
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(spec)
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
