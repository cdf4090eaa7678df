// ABOUTME: HTTP client for the Separator Sizer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/markalston/separator-sizer/backend/models"
)

// Client is the API client for the Separator Sizer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the backend URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-200 response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	switch {
	case e.Message == "":
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	case e.Details != "":
		return "backend error: " + e.Message + ": " + e.Details
	default:
		return "backend error: " + e.Message
	}
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.call(ctx, http.MethodGet, "/api/v1/health", nil, "", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Size calls POST /api/v1/separator/size. A positive targetSR asks the
// backend to pick the nearest horizontal sweep row.
func (c *Client) Size(ctx context.Context, input *models.SeparatorInput, targetSR float64) (*models.SizingResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encoding input: %w", err)
	}

	path := "/api/v1/separator/size"
	if targetSR > 0 {
		path += "?target_sr=" + strconv.FormatFloat(targetSR, 'f', -1, 64)
	}

	var result models.SizingResponse
	if err := c.call(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClassifyFile uploads a .xlsx or .csv well table to POST /api/v1/wells/classify
func (c *Client) ClassifyFile(ctx context.Context, path string) (*models.ClassificationResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err == nil {
		_, err = io.Copy(part, f)
	}
	if err == nil {
		err = mw.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("cannot upload %s: %w", path, err)
	}

	var result models.ClassificationResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/wells/classify", &buf, mw.FormDataContentType(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClassifyWells posts well records as JSON to POST /api/v1/wells/classify
func (c *Client) ClassifyWells(ctx context.Context, wells []models.WellRecord) (*models.ClassificationResponse, error) {
	body, err := json.Marshal(models.ClassificationRequest{Wells: wells})
	if err != nil {
		return nil, fmt.Errorf("encoding wells: %w", err)
	}

	var result models.ClassificationResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/wells/classify", bytes.NewReader(body), "application/json", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Report downloads the PDF report for a classified batch into w
func (c *Client) Report(ctx context.Context, batchID string, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, "/api/v1/wells/report?batch_id="+url.QueryEscape(batchID), nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("downloading report: %w", err)
	}
	return nil
}

// ReportPath is the default file name for a batch report
func ReportPath(batchID string) string {
	return fmt.Sprintf("separator-report-%s.pdf", batchID)
}

// SaveReport writes the batch PDF to path, removing a partial file on failure
func (c *Client) SaveReport(ctx context.Context, batchID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}

	if err := c.Report(ctx, batchID, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// call sends a request and decodes the JSON body of a 200 response into out
func (c *Client) call(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	resp, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// send performs the request. Any status other than 200 is returned as an
// *APIError with the response body already consumed.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			return nil, errors.New("request canceled")
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, errors.New("request timed out")
		}
		return nil, fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
	}

	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload models.ErrorResponse
	if json.NewDecoder(resp.Body).Decode(&payload) == nil {
		apiErr.Message = payload.Error
		apiErr.Details = payload.Details
	}
	return nil, apiErr
}
