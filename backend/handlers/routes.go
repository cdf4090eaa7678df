// ABOUTME: Route table for the sizing API
// ABOUTME: Each endpoint with its method, handler and rate limit tier

package handlers

import "net/http"

// RateTier selects which rate limiter guards a route
type RateTier string

const (
	TierNone    RateTier = "none"    // never limited
	TierDefault RateTier = "default" // JSON endpoints
	TierUpload  RateTier = "upload"  // spreadsheet uploads
)

// APIPrefix is shared by every route
const APIPrefix = "/api/v1"

// Route binds a method and path to a handler
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
	Tier    RateTier
}

// Routes returns the full route table in registration order.
func (h *Handler) Routes() []Route {
	route := func(method, path string, fn http.HandlerFunc, tier RateTier) Route {
		return Route{Method: method, Path: APIPrefix + path, Handler: fn, Tier: tier}
	}

	return []Route{
		route(http.MethodGet, "/health", h.Health, TierNone),
		route(http.MethodGet, "/openapi.yaml", h.OpenAPISpec, TierNone),

		route(http.MethodPost, "/separator/size", h.SizeSeparator, TierDefault),

		route(http.MethodPost, "/wells/classify", h.ClassifyWells, TierUpload),
		route(http.MethodGet, "/wells/report", h.WellReport, TierDefault),
	}
}
