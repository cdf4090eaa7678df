// ABOUTME: HTTP handler for batch separator-type classification
// ABOUTME: Accepts an .xlsx/.csv upload or a JSON well list and caches the batch for reporting

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/google/uuid"

	"github.com/markalston/separator-sizer/backend/middleware"
	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/backend/services"
)

// uploadField is the multipart form field carrying the well table
const uploadField = "file"

// ClassifyWells recommends a separator type for every well in the request.
// A multipart body must carry the table in the "file" field; any other body
// is decoded as a ClassificationRequest.
func (h *Handler) ClassifyWells(w http.ResponseWriter, r *http.Request) {
	var (
		recs []models.Recommendation
		err  error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes())
		recs, err = h.classifyUpload(r)
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		recs, err = h.classifyJSON(r)
	}

	if errors.Is(err, errBadRequest) {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	batchID := uuid.NewString()
	h.batches.Set(batchID, recs)

	slog.Info("Classified well batch",
		"request_id", middleware.RequestID(r.Context()),
		"batch_id", batchID,
		"wells", len(recs),
	)

	h.writeJSON(w, http.StatusOK, models.ClassificationResponse{
		BatchID:         batchID,
		Count:           len(recs),
		Recommendations: recs,
	})
}

var errBadRequest = errors.New("bad request")

type badRequest string

func (e badRequest) Error() string { return string(e) }
func (e badRequest) Unwrap() error { return errBadRequest }

func (h *Handler) classifyUpload(r *http.Request) ([]models.Recommendation, error) {
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, badRequest("No file uploaded in field \"" + uploadField + "\"")
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, badRequest("Uploaded file has no name")
	}

	table, err := services.ReadWellTable(file, header.Filename)
	if err != nil {
		return nil, err
	}
	return h.classifier.ClassifyTable(table)
}

func (h *Handler) classifyJSON(r *http.Request) ([]models.Recommendation, error) {
	var req models.ClassificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, badRequest("Invalid JSON")
	}
	if len(req.Wells) == 0 {
		return nil, badRequest("No wells provided")
	}
	return h.classifier.Classify(req.Wells)
}
