// ABOUTME: CORS middleware for browser clients of the API
// ABOUTME: Echoes allow-listed origins and answers preflight requests itself

package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

const corsMaxAge = 10 * time.Minute

var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", ")
	corsHeaders = strings.Join([]string{"Content-Type", RequestIDHeader}, ", ")
	corsExposed = strings.Join([]string{RequestIDHeader, "Content-Disposition", "Retry-After"}, ", ")
)

// CORS allows cross-origin calls from origins, where "*" admits any origin.
// With no origins no CORS headers are sent and browsers block cross-origin
// calls. Preflight OPTIONS requests get 204 and never reach the handler.
func CORS(origins []string) Middleware {
	anyOrigin := slices.Contains(origins, "*")
	permitted := func(origin string) bool {
		return origin != "" && (anyOrigin || slices.Contains(origins, origin))
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			if origin := r.Header.Get("Origin"); permitted(origin) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", corsMethods)
				h.Set("Access-Control-Allow-Headers", corsHeaders)
				h.Set("Access-Control-Expose-Headers", corsExposed)
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(corsMaxAge.Seconds())))
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next(w, r)
		}
	}
}
