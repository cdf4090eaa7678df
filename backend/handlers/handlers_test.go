package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/markalston/separator-sizer/backend/cache"
	"github.com/markalston/separator-sizer/backend/config"
	"github.com/markalston/separator-sizer/backend/models"
)

const horizontalCase = `{
	"gas_rate": 6.6, "oil_rate": 5000, "water_rate": 6000,
	"pressure": 65, "temperature": 90,
	"gas_sg": 0.6, "oil_sg": 30, "water_sg": 1.07,
	"z": 0.85, "viscosity": 10,
	"oil_retention_min": 5, "water_retention_min": 10,
	"b": 0.5, "separator_type": "Horizontal"
}`

const wellsCSV = `Gas Flow,Oil Flow,Water Flow,Sand Content,Operating Pressure,Operating Temperature,Oil API Gravity,Gas Specific Gravity,Field Type
20,1000,9000,1,500,120,30,0.7,Onshore
2,800,100,0.5,300,90,35,0.6,Offshore
`

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	c := cache.New[[]models.Recommendation](5 * time.Minute)
	t.Cleanup(c.Close)
	return NewHandler(&config.Config{ReportTTL: 300, MaxUploadMB: 1}, c)
}

func decodeError(t *testing.T, body *bytes.Buffer) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(t)
	h.batches.Set("batch", []models.Recommendation{{}})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	h.Health(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp models.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("Expected status ok, got %v", resp.Status)
	}
	if resp.ReportsCached != 1 {
		t.Errorf("Expected 1 cached report, got %d", resp.ReportsCached)
	}
}

func TestSizeSeparator_Horizontal(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/v1/separator/size?target_sr=4.5", strings.NewReader(horizontalCase))
	w := httptest.NewRecorder()

	h.SizeSeparator(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.SizingResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Geometry != models.GeometryHorizontal {
		t.Errorf("Expected horizontal, got %q", resp.Geometry)
	}
	if resp.Horizontal == nil {
		t.Fatal("Expected horizontal result")
	}
	if resp.Horizontal.Diameter != 3721.71 {
		t.Errorf("Expected rounded diameter 3721.71, got %v", resp.Horizontal.Diameter)
	}
	if len(resp.Horizontal.Sweep) != 9 {
		t.Errorf("Expected 9 sweep rows, got %d", len(resp.Horizontal.Sweep))
	}
	if resp.Recommended == nil {
		t.Fatal("Expected a recommended row for target_sr")
	}
	if resp.Recommended.Diameter != 7176.24 {
		t.Errorf("Expected recommended diameter 7176.24, got %v", resp.Recommended.Diameter)
	}
}

func TestSizeSeparator_Vertical(t *testing.T) {
	h := newTestHandler(t)

	body := strings.Replace(horizontalCase, `"Horizontal"`, `"vertical"`, 1)
	req := httptest.NewRequest("POST", "/api/v1/separator/size?target_sr=3", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.SizeSeparator(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if _, ok := resp["horizontal"]; ok {
		t.Error("Expected no horizontal block for vertical sizing")
	}
	if _, ok := resp["recommended"]; ok {
		t.Error("Expected no recommended row for vertical sizing")
	}
	vertical, ok := resp["vertical"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected vertical block, got %v", resp["vertical"])
	}
	if vertical["governing_constraint"] != "gas" {
		t.Errorf("Expected gas governing constraint, got %v", vertical["governing_constraint"])
	}
}

func TestSizeSeparator_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		wantStatus int
		wantError  string
	}{
		{"invalid JSON", "/api/v1/separator/size", "{not json", http.StatusBadRequest, "Invalid JSON"},
		{"invalid geometry", "/api/v1/separator/size", strings.Replace(horizontalCase, `"Horizontal"`, `"spherical"`, 1), http.StatusBadRequest, "Invalid separator type"},
		{"zero pressure", "/api/v1/separator/size", strings.Replace(horizontalCase, `"pressure": 65`, `"pressure": 0`, 1), http.StatusBadRequest, "Invalid input"},
		{"bad target", "/api/v1/separator/size?target_sr=tall", horizontalCase, http.StatusBadRequest, "target_sr must be a positive number"},
		{"body too large", "/api/v1/separator/size", `{"pad":"` + strings.Repeat("x", maxRequestBodySize) + `"}`, http.StatusRequestEntityTooLarge, "Request body too large"},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tt.url, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.SizeSeparator(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			resp := decodeError(t, w.Body)
			if resp.Error != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, resp.Error)
			}
			if resp.Code != tt.wantStatus {
				t.Errorf("Expected code %d in body, got %d", tt.wantStatus, resp.Code)
			}
		})
	}
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	fw.Write([]byte(content))
	if err := mw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestClassifyWells_Upload(t *testing.T) {
	h := newTestHandler(t)

	body, contentType := multipartUpload(t, "file", "wells.csv", wellsCSV)
	req := httptest.NewRequest("POST", "/api/v1/wells/classify", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.ClassifyWells(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ClassificationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Count != 2 || len(resp.Recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations, got count=%d len=%d", resp.Count, len(resp.Recommendations))
	}
	if resp.Recommendations[0].SeparatorType != models.SeparatorHorizontal {
		t.Errorf("Expected first well horizontal, got %q", resp.Recommendations[0].SeparatorType)
	}
	if resp.Recommendations[1].Reason != "Suitable for low GOR." {
		t.Errorf("Expected low GOR reason, got %q", resp.Recommendations[1].Reason)
	}

	cached, ok := h.batches.Get(resp.BatchID)
	if !ok {
		t.Fatal("Expected batch to be cached for reporting")
	}
	if len(cached) != 2 {
		t.Errorf("Expected 2 cached recommendations, got %d", len(cached))
	}
}

func TestClassifyWells_JSON(t *testing.T) {
	h := newTestHandler(t)

	body := `{"wells":[{"gas_flow":20,"oil_flow":1000,"water_flow":9000,"sand_content":1,"field_type":"Onshore"}]}`
	req := httptest.NewRequest("POST", "/api/v1/wells/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ClassifyWells(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ClassificationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.BatchID == "" {
		t.Error("Expected a batch ID")
	}
	if resp.Recommendations[0].Rule != 1 {
		t.Errorf("Expected rule 1, got %d", resp.Recommendations[0].Rule)
	}
}

func TestClassifyWells_Errors(t *testing.T) {
	missingColumns := "Gas Flow,Oil Flow\n1,2\n"

	tests := []struct {
		name       string
		build      func(t *testing.T) (*bytes.Buffer, string)
		wantStatus int
		wantError  string
	}{
		{
			name: "missing columns",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartUpload(t, "file", "wells.csv", missingColumns)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required columns",
		},
		{
			name: "unsupported format",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartUpload(t, "file", "wells.txt", wellsCSV)
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  "Unsupported file format",
		},
		{
			name: "corrupt workbook",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartUpload(t, "file", "wells.xlsx", "not a zip")
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Unable to read the file",
		},
		{
			name: "malformed CSV",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartUpload(t, "file", "wells.csv", "Gas Flow,Oil \"Flow\n1,2\n")
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Unable to read the file",
		},
		{
			name: "wrong field name",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartUpload(t, "upload", "wells.csv", wellsCSV)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  `No file uploaded in field "file"`,
		},
		{
			name: "water cut of 100%",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString(`{"wells":[{"water_flow":100}]}`), "application/json"
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Invalid water cut",
		},
		{
			name: "no wells",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString(`{"wells":[]}`), "application/json"
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "No wells provided",
		},
		{
			name: "invalid JSON",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString(`{"wells":`), "application/json"
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid JSON",
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := tt.build(t)
			req := httptest.NewRequest("POST", "/api/v1/wells/classify", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			h.ClassifyWells(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if resp := decodeError(t, w.Body); resp.Error != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, resp.Error)
			}
		})
	}

	if n := h.batches.Len(); n != 0 {
		t.Errorf("Failed requests must not cache batches, got %d", n)
	}
}

func classifyBatch(t *testing.T, h *Handler) string {
	t.Helper()
	body, contentType := multipartUpload(t, "file", "wells.csv", wellsCSV)
	req := httptest.NewRequest("POST", "/api/v1/wells/classify", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.ClassifyWells(w, req)

	var resp models.ClassificationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode classify response: %v", err)
	}
	return resp.BatchID
}

func TestWellReport(t *testing.T) {
	h := newTestHandler(t)
	batchID := classifyBatch(t, h)

	req := httptest.NewRequest("GET", "/api/v1/wells/report?batch_id="+batchID, nil)
	w := httptest.NewRecorder()

	h.WellReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, batchID) {
		t.Errorf("Expected Content-Disposition to name the batch, got %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("Expected PDF body")
	}
}

func TestWellReport_ConcurrentRequests(t *testing.T) {
	h := newTestHandler(t)
	batchID := classifyBatch(t, h)

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/api/v1/wells/report?batch_id="+batchID, nil)
			w := httptest.NewRecorder()
			h.WellReport(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("Request %d: expected 200, got %d", i, code)
		}
	}
}

func TestWellReport_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"missing batch id", "", http.StatusBadRequest},
		{"malformed batch id", "?batch_id=../../etc/passwd", http.StatusBadRequest},
		{"unknown batch", "?batch_id=12345678-1234-1234-1234-123456789abc", http.StatusNotFound},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/wells/report"+tt.query, nil)
			w := httptest.NewRecorder()

			h.WellReport(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestOpenAPISpec(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/openapi.yaml", nil)
	w := httptest.NewRecorder()

	h.OpenAPISpec(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Expected application/yaml, got %q", ct)
	}

	if w.Header().Get("ETag") != `"`+Version+`"` {
		t.Errorf("Expected ETag of the build version, got %q", w.Header().Get("ETag"))
	}
}

func TestOpenAPISpec_NotModified(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/openapi.yaml", nil)
	req.Header.Set("If-None-Match", `"`+Version+`"`)
	w := httptest.NewRecorder()

	h.OpenAPISpec(w, req)

	if w.Code != http.StatusNotModified {
		t.Errorf("Expected status 304, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Error("Expected empty body on 304")
	}
}
