// ABOUTME: HTTP handler for single-well separator sizing
// ABOUTME: Decodes stream properties and returns rounded vertical or horizontal dimensions

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/markalston/separator-sizer/backend/middleware"
	"github.com/markalston/separator-sizer/backend/models"
)

// SizeSeparator sizes one separator. The optional target_sr query parameter
// selects the horizontal sweep row nearest that slenderness ratio.
// HTTP method validation handled by Go 1.22+ router pattern matching.
func (h *Handler) SizeSeparator(w http.ResponseWriter, r *http.Request) {
	var target float64
	if raw := r.URL.Query().Get("target_sr"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			h.writeError(w, "target_sr must be a positive number", http.StatusBadRequest)
			return
		}
		target = v
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var input models.SeparatorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := h.sizer.Size(input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	// Pick the row at full precision, report it rounded
	resp := models.SizingResponse{SizingResult: result.Rounded()}
	if target > 0 {
		if i := result.NearestSlendernessIndex(target); i >= 0 {
			step := resp.Horizontal.Sweep[i]
			resp.Recommended = &step
		}
	}

	slog.Debug("Sized separator",
		"request_id", middleware.RequestID(r.Context()),
		"geometry", result.Geometry,
		"drag_coefficient", result.Settling.DragCoefficient,
	)

	h.writeJSON(w, http.StatusOK, resp)
}
