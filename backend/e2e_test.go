// ABOUTME: End-to-end tests for the assembled HTTP server
// ABOUTME: Exercises the full middleware chain from sizing through classification to report download

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/markalston/separator-sizer/backend/cache"
	"github.com/markalston/separator-sizer/backend/config"
	"github.com/markalston/separator-sizer/backend/handlers"
	"github.com/markalston/separator-sizer/backend/models"
)

const wellsCSV = `Gas Flow,Oil Flow,Water Flow,Sand Content,Operating Pressure,Operating Temperature,Oil API Gravity,Gas Specific Gravity,Field Type
20,1000,9000,1,500,120,30,0.7,Onshore
2,800,100,0.5,300,90,35,0.6,Offshore
12,1000,6000,1,500,120,30,0.7,Onshore
`

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	batches := cache.New[[]models.Recommendation](time.Minute)
	t.Cleanup(batches.Close)

	server := httptest.NewServer(newMux(cfg, handlers.NewHandler(cfg, batches)))
	t.Cleanup(server.Close)
	return server
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		ReportTTL:          60,
		MaxUploadMB:        1,
		CORSAllowedOrigins: []string{"https://sizer.example.com"},
		RateLimitEnabled:   true,
		RateLimitUpload:    2,
		RateLimitDefault:   100,
	}
}

func uploadCSV(t *testing.T, url, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "wells.csv")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	io.WriteString(fw, content)
	mw.Close()

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	return resp
}

// TestClassifyAndReportE2E uploads a well table and downloads its PDF report
func TestClassifyAndReportE2E(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp := uploadCSV(t, server.URL+"/api/v1/wells/classify", wellsCSV)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID from logging middleware")
	}

	var classified models.ClassificationResponse
	if err := json.NewDecoder(resp.Body).Decode(&classified); err != nil {
		t.Fatalf("Failed to decode classification: %v", err)
	}

	wantRules := []int{1, 8, 3}
	if classified.Count != len(wantRules) {
		t.Fatalf("Expected %d recommendations, got %d", len(wantRules), classified.Count)
	}
	for i, rule := range wantRules {
		if classified.Recommendations[i].Rule != rule {
			t.Errorf("Well %d: expected rule %d, got %d", i, rule, classified.Recommendations[i].Rule)
		}
	}

	report, err := http.Get(server.URL + "/api/v1/wells/report?batch_id=" + classified.BatchID)
	if err != nil {
		t.Fatalf("Report request failed: %v", err)
	}
	defer report.Body.Close()

	if report.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 for report, got %d", report.StatusCode)
	}
	pdf, _ := io.ReadAll(report.Body)
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("Expected PDF document")
	}

	health, err := http.Get(server.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("Health request failed: %v", err)
	}
	defer health.Body.Close()

	var status models.HealthResponse
	json.NewDecoder(health.Body).Decode(&status)
	if status.ReportsCached != 1 {
		t.Errorf("Expected 1 cached batch, got %d", status.ReportsCached)
	}
}

// TestSizeE2E sizes both geometries through the full chain
func TestSizeE2E(t *testing.T) {
	server := newTestServer(t, testConfig())

	input := models.SeparatorInput{
		GasRate: 6.6, OilRate: 5000, WaterRate: 6000,
		Pressure: 65, Temperature: 90,
		GasSG: 0.6, OilSG: 30, WaterSG: 1.07,
		Z: 0.85, Viscosity: 10,
		OilRetentionMin: 5, WaterRetentionMin: 10,
		HorizontalConstantB: 0.5,
	}

	for _, geometry := range []string{"vertical", "horizontal"} {
		t.Run(geometry, func(t *testing.T) {
			input.Geometry = geometry
			body, _ := json.Marshal(input)

			resp, err := http.Post(server.URL+"/api/v1/separator/size?target_sr=4", "application/json", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Size request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Expected 200, got %d", resp.StatusCode)
			}

			var result models.SizingResponse
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				t.Fatalf("Failed to decode sizing: %v", err)
			}
			if string(result.Geometry) != geometry {
				t.Errorf("Expected %s, got %s", geometry, result.Geometry)
			}

			switch geometry {
			case "vertical":
				if result.Vertical == nil || result.Horizontal != nil {
					t.Fatal("Expected only a vertical result")
				}
				if result.Recommended != nil {
					t.Error("Expected no recommended row for a vertical vessel")
				}
			case "horizontal":
				if result.Horizontal == nil || len(result.Horizontal.Sweep) != 9 {
					t.Fatal("Expected a horizontal result with a nine-row sweep")
				}
				if result.Recommended == nil {
					t.Error("Expected a recommended row for target_sr")
				}
			}
		})
	}
}

// TestCORSE2E verifies allow-listed origins and preflight through the mux
func TestCORSE2E(t *testing.T) {
	server := newTestServer(t, testConfig())

	tests := []struct {
		name           string
		method         string
		origin         string
		expectedOrigin string
		expectedStatus int
	}{
		{"allowed origin", http.MethodGet, "https://sizer.example.com", "https://sizer.example.com", http.StatusOK},
		{"disallowed origin", http.MethodGet, "https://evil.com", "", http.StatusOK},
		{"preflight", http.MethodOptions, "https://sizer.example.com", "https://sizer.example.com", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, server.URL+"/api/v1/health", nil)
			req.Header.Set("Origin", tt.origin)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.expectedOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.expectedOrigin)
			}
		})
	}
}

// TestRateLimitE2E_UploadTier verifies the stricter upload limit and the
// exempt health endpoint
func TestRateLimitE2E_UploadTier(t *testing.T) {
	server := newTestServer(t, testConfig())

	for i := 0; i < 2; i++ {
		resp := uploadCSV(t, server.URL+"/api/v1/wells/classify", wellsCSV)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Upload %d should succeed, got %d", i+1, resp.StatusCode)
		}
	}

	resp := uploadCSV(t, server.URL+"/api/v1/wells/classify", wellsCSV)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("Third upload should return 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("Expected Retry-After header on 429 response")
	}

	for i := 0; i < 20; i++ {
		health, err := http.Get(server.URL + "/api/v1/health")
		if err != nil {
			t.Fatalf("Health request failed: %v", err)
		}
		health.Body.Close()
		if health.StatusCode != http.StatusOK {
			t.Fatalf("Exempt health request %d should succeed, got %d", i+1, health.StatusCode)
		}
	}
}

// TestRateLimitE2E_Disabled verifies that disabling rate limits passes all uploads
func TestRateLimitE2E_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = false
	server := newTestServer(t, cfg)

	for i := 0; i < 5; i++ {
		resp := uploadCSV(t, server.URL+"/api/v1/wells/classify", wellsCSV)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Upload %d should succeed with limits disabled, got %d", i+1, resp.StatusCode)
		}
	}
}

func TestMethodNotAllowedE2E(t *testing.T) {
	server := newTestServer(t, testConfig())

	resp, err := http.Post(server.URL+"/api/v1/health", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}
