// ABOUTME: HTTP handlers for the separator sizing API
// ABOUTME: Shared handler state, JSON response helpers and error-kind mapping

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/separator-sizer/backend/cache"
	"github.com/markalston/separator-sizer/backend/config"
	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/backend/services"
)

// maxRequestBodySize limits JSON request bodies to 1MB to prevent DOS attacks
const maxRequestBodySize = 1 << 20 // 1MB

// defaultReportTTL applies when the handler is built without configuration
const defaultReportTTL = 30 * time.Minute

// Version is reported by the health endpoint
var Version = "dev"

type Handler struct {
	cfg          *config.Config
	batches      *cache.Cache[[]models.Recommendation]
	sizer        *services.SizingCalculator
	classifier   *services.Classifier
	reportWriter *services.ReportWriter
	renders      singleflight.Group
}

// NewHandler wires the engines to the batch cache. A nil cache gets a
// private one using the configured report TTL.
func NewHandler(cfg *config.Config, batches *cache.Cache[[]models.Recommendation]) *Handler {
	if batches == nil {
		ttl := defaultReportTTL
		if cfg != nil && cfg.ReportTTL > 0 {
			ttl = time.Duration(cfg.ReportTTL) * time.Second
		}
		batches = cache.New[[]models.Recommendation](ttl)
	}

	return &Handler{
		cfg:          cfg,
		batches:      batches,
		sizer:        services.NewSizingCalculator(),
		classifier:   services.NewClassifier(),
		reportWriter: services.NewReportWriter(),
	}
}

// maxUploadBytes returns the multipart upload limit
func (h *Handler) maxUploadBytes() int64 {
	if h.cfg != nil && h.cfg.MaxUploadMB > 0 {
		return h.cfg.MaxUploadBytes()
	}
	return 10 << 20
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorDetails(w, message, "", code)
}

func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// writeServiceError maps engine error kinds to HTTP status codes. Input
// problems are the caller's to fix; anything unrecognized is a server fault.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, services.ErrInvalidGeometry):
		h.writeErrorDetails(w, "Invalid separator type", err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrMissingField):
		h.writeErrorDetails(w, "Missing required columns", err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidInput):
		h.writeErrorDetails(w, "Invalid input", err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidWaterCut):
		h.writeErrorDetails(w, "Invalid water cut", err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrUnreadableTable):
		h.writeErrorDetails(w, "Unable to read the file", err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrUnsupportedFormat):
		h.writeErrorDetails(w, "Unsupported file format", "upload an .xlsx or .csv file", http.StatusUnsupportedMediaType)
	default:
		slog.Error("Request failed", "path", r.URL.Path, "error", err)
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}
