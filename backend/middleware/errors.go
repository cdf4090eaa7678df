// ABOUTME: JSON error responses and panic recovery for middleware
// ABOUTME: Ensures middleware error responses match the API's JSON format

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/markalston/separator-sizer/backend/models"
)

// writeJSONError writes the API's ErrorResponse body with the given status code
func writeJSONError(w http.ResponseWriter, message, details string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// Recover turns a handler panic into a 500 JSON response.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Handler panic",
					"request_id", RequestID(r.Context()),
					"path", sanitizePath(r.URL.Path),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeJSONError(w, "Internal server error", "", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}
