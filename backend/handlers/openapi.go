// ABOUTME: Handler serving the API's OpenAPI document
// ABOUTME: The YAML is embedded at build time so the binary is self-describing

package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.yaml
var openapiSpec []byte

// OpenAPISpec serves the embedded OpenAPI document, tagged with the build
// version.
func (h *Handler) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	etag := `"` + Version + `"`
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("ETag", etag)

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Write(openapiSpec)
}
