// ABOUTME: Tests for the Separator Sizer API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/markalston/separator-sizer/backend/models"
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok", Version: "1.2.3", ReportsCached: 4})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.ReportsCached != 4 {
		t.Errorf("expected 4 cached reports, got %d", resp.ReportsCached)
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestHealth_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected error for non-OK status, got nil")
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Errorf("expected backend message in error, got %v", err)
	}
}

func TestHealth_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Health(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
	if err.Error() != "request canceled" {
		t.Errorf("expected 'request canceled', got %v", err)
	}
}

func TestSize_SendsInputAndTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/separator/size" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("target_sr"); got != "4.5" {
			t.Errorf("expected target_sr 4.5, got %q", got)
		}

		var input models.SeparatorInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if input.GasRate != 6.6 || input.Geometry != "horizontal" {
			t.Errorf("unexpected input %+v", input)
		}

		json.NewEncoder(w).Encode(models.SizingResponse{
			SizingResult: models.SizingResult{
				Geometry:   models.GeometryHorizontal,
				Horizontal: &models.HorizontalSizing{Diameter: 100},
			},
			Recommended: &models.DiameterStep{Diameter: 85, SlendernessRatio: 4.4},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Size(context.Background(), &models.SeparatorInput{GasRate: 6.6, Geometry: "horizontal"}, 4.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Horizontal == nil || resp.Horizontal.Diameter != 100 {
		t.Errorf("unexpected horizontal result %+v", resp.Horizontal)
	}
	if resp.Recommended == nil || resp.Recommended.Diameter != 85 {
		t.Errorf("unexpected recommended row %+v", resp.Recommended)
	}
}

func TestSize_NoTargetOmitsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(models.SizingResponse{})
	}))
	defer server.Close()

	if _, err := New(server.URL).Size(context.Background(), &models.SeparatorInput{}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSize_BackendErrorIncludesDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid input", Details: "pressure must be positive", Code: 400})
	}))
	defer server.Close()

	_, err := New(server.URL).Size(context.Background(), &models.SeparatorInput{}, 0)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "pressure must be positive") {
		t.Errorf("expected details in error, got %v", err)
	}
}

func TestClassifyFile_Multipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wells.csv")
	if err := os.WriteFile(path, []byte("Gas Flow\n1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("expected multipart file: %v", err)
		}
		defer file.Close()
		if header.Filename != "wells.csv" {
			t.Errorf("expected filename wells.csv, got %s", header.Filename)
		}

		json.NewEncoder(w).Encode(models.ClassificationResponse{BatchID: "b1", Count: 1})
	}))
	defer server.Close()

	resp, err := New(server.URL).ClassifyFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.BatchID != "b1" {
		t.Errorf("expected batch b1, got %s", resp.BatchID)
	}
}

func TestClassifyFile_MissingFile(t *testing.T) {
	_, err := New("http://localhost:8080").ClassifyFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestClassifyWells_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ClassificationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if len(req.Wells) != 2 {
			t.Errorf("expected 2 wells, got %d", len(req.Wells))
		}
		json.NewEncoder(w).Encode(models.ClassificationResponse{BatchID: "b2", Count: len(req.Wells)})
	}))
	defer server.Close()

	resp, err := New(server.URL).ClassifyWells(context.Background(), []models.WellRecord{{GasFlow: 1}, {GasFlow: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected count 2, got %d", resp.Count)
	}
}

func TestReport_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("batch_id"); got != "abc" {
			t.Errorf("expected batch_id abc, got %q", got)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.3 test"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	if err := New(server.URL).Report(context.Background(), "abc", &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("expected PDF bytes, got %q", buf.String())
	}
}

func TestReport_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Batch not found", Code: 404})
	}))
	defer server.Close()

	var buf bytes.Buffer
	err := New(server.URL).Report(context.Background(), "abc", &buf)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written on error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected APIError with status 404, got %v", err)
	}
}

func TestAPIError_Message(t *testing.T) {
	tests := []struct {
		err      APIError
		expected string
	}{
		{APIError{StatusCode: 503}, "backend returned status 503"},
		{APIError{StatusCode: 400, Message: "Invalid input"}, "backend error: Invalid input"},
		{APIError{StatusCode: 422, Message: "Invalid well", Details: "row 3"}, "backend error: Invalid well: row 3"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestSaveReport_WritesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.3"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), ReportPath("abc"))
	if err := New(server.URL).SaveReport(context.Background(), "abc", path); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected report file: %v", err)
	}
	if string(data) != "%PDF-1.3" {
		t.Errorf("unexpected content %q", data)
	}
	if filepath.Base(path) != "separator-report-abc.pdf" {
		t.Errorf("unexpected default name %q", filepath.Base(path))
	}
}

func TestSaveReport_RemovesPartialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "batch not found"})
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "out.pdf")
	err := New(server.URL).SaveReport(context.Background(), "abc", path)
	if err == nil || !strings.Contains(err.Error(), "batch not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("expected partial file removed")
	}
}
