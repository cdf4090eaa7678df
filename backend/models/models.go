// ABOUTME: Shared API response models
// ABOUTME: JSON-serializable structures returned by every endpoint

package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents the health endpoint payload
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	ReportsCached int    `json:"reports_cached"`
}
