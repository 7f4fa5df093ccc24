package sampledata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/okian/dfsviz/internal/domain/ingest"
	"github.com/okian/dfsviz/internal/domain/model"
	"github.com/okian/dfsviz/pkg/logger"
)

// Client uploads slates to a running server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client from the config's BaseURL and Timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Upload posts body as a multipart file to /api/upload. A 422 still returns
// the parse result; any other non-200 status is an ErrUpload.
func (c *Client) Upload(ctx context.Context, filename string, body io.Reader) (ingest.Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return ingest.Result{}, fmt.Errorf("create form: %w", err)
	}
	if _, err := io.Copy(fw, body); err != nil {
		return ingest.Result{}, fmt.Errorf("copy body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return ingest.Result{}, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return ingest.Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return ingest.Result{}, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ingest.Result{}, fmt.Errorf("read response: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusUnprocessableEntity:
		var res ingest.Result
		if err := json.Unmarshal(raw, &res); err != nil {
			return ingest.Result{}, fmt.Errorf("decode response: %w", err)
		}
		logger.Get().Info(ctx, "slate uploaded",
			logger.String("file", filename),
			logger.Bool("success", res.Success),
			logger.Int("players", len(res.Players)),
			logger.Int("warnings", len(res.Errors)),
		)
		return res, nil
	default:
		return ingest.Result{}, fmt.Errorf("%w: status %d: %s", ErrUpload, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
}

// Verify checks a parse result against the slate that produced it: every row
// has a name, so every row must come back, grouped under its position.
func Verify(s Slate, res ingest.Result) error {
	if !res.Success {
		return fmt.Errorf("upload was not parsed: %s", strings.Join(res.Errors, "; "))
	}
	want := s.Counts()
	for _, pos := range model.Keys {
		if got := len(res.Collections[pos]); got != want[pos] {
			return fmt.Errorf("%s: got %d players, want %d", pos, got, want[pos])
		}
	}
	return nil
}
