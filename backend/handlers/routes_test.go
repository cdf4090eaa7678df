// ABOUTME: Tests for the route table
// ABOUTME: Tiers, uniqueness and agreement with the embedded OpenAPI document

package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func routeKeys(t *testing.T) map[string]Route {
	t.Helper()
	keys := map[string]Route{}
	for _, r := range NewHandler(nil, nil).Routes() {
		key := r.Method + " " + r.Path
		require.NotContains(t, keys, key, "duplicate route")
		keys[key] = r
	}
	return keys
}

func TestRoutes_Tiers(t *testing.T) {
	want := map[string]RateTier{
		"GET /api/v1/health":          TierNone,
		"GET /api/v1/openapi.yaml":    TierNone,
		"POST /api/v1/separator/size": TierDefault,
		"POST /api/v1/wells/classify": TierUpload,
		"GET /api/v1/wells/report":    TierDefault,
	}

	routes := routeKeys(t)
	require.Len(t, routes, len(want))
	for key, tier := range want {
		r, ok := routes[key]
		if assert.True(t, ok, "missing route %s", key) {
			assert.Equal(t, tier, r.Tier, key)
			assert.NotNil(t, r.Handler, key)
		}
	}
}

func TestRoutes_MatchOpenAPIDocument(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(openapiSpec, &doc))

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	routes := routeKeys(t)
	for key := range routes {
		assert.True(t, documented[key], "route %s is not documented", key)
	}
	for key := range documented {
		if strings.HasPrefix(key, http.MethodOptions) {
			continue
		}
		assert.Contains(t, routes, key, "documented operation has no route")
	}
}
