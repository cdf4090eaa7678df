// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports API status and the number of downloadable report batches

package handlers

import (
	"net/http"

	"github.com/markalston/separator-sizer/backend/models"
)

// Health returns API health status and cached batch count.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:        "ok",
		Version:       Version,
		ReportsCached: h.batches.Len(),
	})
}
