// ABOUTME: HTTP handler for classification PDF reports
// ABOUTME: Renders a cached batch once per concurrent burst via singleflight

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/markalston/separator-sizer/backend/middleware"
	"github.com/markalston/separator-sizer/backend/services"
)

// WellReport streams the PDF for the batch named by the batch_id query parameter.
func (h *Handler) WellReport(w http.ResponseWriter, r *http.Request) {
	batchID := r.URL.Query().Get("batch_id")
	if err := services.ValidateBatchID(batchID); err != nil {
		h.writeErrorDetails(w, "Invalid batch_id", err.Error(), http.StatusBadRequest)
		return
	}

	recs, ok := h.batches.Get(batchID)
	if !ok {
		h.writeError(w, "No results for batch; classify the wells again", http.StatusNotFound)
		return
	}

	v, err, shared := h.renders.Do(batchID, func() (interface{}, error) {
		return h.reportWriter.Render(recs)
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	pdf := v.([]byte)

	slog.Info("Rendered well report",
		"request_id", middleware.RequestID(r.Context()),
		"batch_id", batchID,
		"wells", len(recs),
		"bytes", len(pdf),
		"shared", shared,
	)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "separator-report-"+batchID+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
