package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/de-tools/data-brief/pkg/adapters"
	"github.com/de-tools/data-brief/pkg/models/api"
	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ServiceError is a well-formed {error} payload reported by the
// analysis service, as opposed to a transport failure.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// AnalyzeRequest describes one submission to POST /analyze. The
// attachment is forwarded unexamined; its content is opaque here.
type AnalyzeRequest struct {
	Query          string
	NeedsChart     bool
	AttachmentPath string
}

// Client talks to the DataBrief analysis service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// History fetches the full exchange log in chronological order.
func (c *Client) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	body, err := c.get(ctx, "/history")
	if err != nil {
		return nil, err
	}

	var entries []api.HistoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history response: %w", err)
	}

	result := make([]domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, adapters.MapApiHistoryEntryToDomain(e))
	}
	return result, nil
}

// Analyze submits a query (and an optional attachment) as a multipart
// form and returns the normalized result. A {error} payload comes back
// as *ServiceError.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*domain.AnalysisResult, error) {
	logger := zerolog.Ctx(ctx)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("query", req.Query); err != nil {
		return nil, fmt.Errorf("failed to write query field: %w", err)
	}
	if err := form.WriteField("needs_chart", strconv.FormatBool(req.NeedsChart)); err != nil {
		return nil, fmt.Errorf("failed to write needs_chart field: %w", err)
	}

	if req.AttachmentPath != "" {
		file, err := os.Open(req.AttachmentPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment: %w", err)
		}

		part, err := form.CreateFormFile("file", filepath.Base(req.AttachmentPath))
		if err == nil {
			_, err = io.Copy(part, file)
		}
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("failed to close attachment")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to write attachment part: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var payload api.AnalysisResult
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}

	result := adapters.MapApiAnalysisResultToDomain(payload)
	return &result, nil
}

// Reset asks the service to clear its exchange log.
func (c *Client) Reset(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reset", nil)
	if err != nil {
		return fmt.Errorf("failed to create reset request: %w", err)
	}

	_, err = c.do(req)
	return err
}

// Summary asks the service to compile an executive report over the
// accumulated history.
func (c *Client) Summary(ctx context.Context) (*domain.SessionReport, error) {
	body, err := c.get(ctx, "/summary")
	if err != nil {
		return nil, err
	}

	var payload api.SessionReport
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode summary response: %w", err)
	}

	report := adapters.MapApiSessionReportToDomain(payload)
	return &report, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	return c.do(req)
}

// do executes a request, reads the body and unwraps a service-reported
// {error} envelope into *ServiceError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	logger := zerolog.Ctx(req.Context())

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("path", req.URL.Path).Msg("service request failed")
		return nil, fmt.Errorf("service unreachable: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope api.Envelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return nil, &ServiceError{Message: envelope.Error}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
