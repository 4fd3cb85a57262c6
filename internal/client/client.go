// Package client provides a typed HTTP client for the DocSight analysis service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Text submission bounds in characters (runes, not bytes), enforced before
// any request is issued.
const (
	MinTextLen = 1000
	MaxTextLen = 100000
)

// ErrTextTooShort and ErrTextTooLong guard the raw-text upload path.
var (
	ErrTextTooShort = fmt.Errorf("text must be at least %d characters", MinTextLen)
	ErrTextTooLong  = fmt.Errorf("text must be shorter than %d characters", MaxTextLen)
)

// Client talks to the DocSight service. All methods take a context and
// return wrapped errors; none of them retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client for the service at baseURL. The base URL is required;
// it is injected from config rather than read from the environment here.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("service base URL is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// idResponse is returned by both upload endpoints.
type idResponse struct {
	ID string `json:"id"`
}

// statusResponse is returned by the status endpoint.
type statusResponse struct {
	Status Status `json:"status"`
}

// UploadFile submits a file as multipart form content (field "file") and
// returns the service-assigned job ID.
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload_file", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp idResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	c.logger.Info("file uploaded", "job_id", resp.ID, "filename", filepath.Base(path))
	return resp.ID, nil
}

// UploadText submits raw text as JSON and returns the service-assigned job
// ID. Length bounds are validated before any request is issued.
func (c *Client) UploadText(ctx context.Context, text string) (string, error) {
	chars := utf8.RuneCountInString(text)
	if chars < MinTextLen {
		return "", ErrTextTooShort
	}
	if chars >= MaxTextLen {
		return "", ErrTextTooLong
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload_text", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp idResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("upload text: %w", err)
	}

	c.logger.Info("text uploaded", "job_id", resp.ID, "chars", chars)
	return resp.ID, nil
}

// Status queries the current lifecycle status of a job.
func (c *Client) Status(ctx context.Context, id string) (Status, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/status/"+id, nil)
	if err != nil {
		return StatusUnrecognized, err
	}

	var resp statusResponse
	if err := c.do(req, &resp); err != nil {
		return StatusUnrecognized, fmt.Errorf("fetch status: %w", err)
	}
	return resp.Status, nil
}

// Result fetches the finished artifact for a job. Called once per result
// view; it is not polled.
func (c *Client) Result(ctx context.Context, id string) (*SummaryResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/result/"+id, nil)
	if err != nil {
		return nil, err
	}

	var resp SummaryResult
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("fetch result: %w", err)
	}
	return &resp, nil
}

// History fetches the full list of prior submissions, newest first.
// No pagination, no filtering.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/files", nil)
	if err != nil {
		return nil, err
	}

	var entries []HistoryEntry
	if err := c.do(req, &entries); err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	return entries, nil
}

// DownloadURL returns the direct link to the generated artifact for a job.
func (c *Client) DownloadURL(id string) string {
	return c.baseURL + "/download/" + id
}

// Download streams the generated artifact for a job into w.
func (c *Client) Download(ctx context.Context, id string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/download/"+id, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service error: %s", resp.Status)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	return nil
}

// newRequest builds a request against the service with a correlation ID for
// log matching on the server side.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// do executes the request and decodes the JSON response into result.
// Transport failures, non-2xx statuses and undecodable bodies are not
// distinguished: all surface as a single error per operation.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("service error: %s", resp.Status)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}
