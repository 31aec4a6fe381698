package hazardapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/coastal-hazard-console/internal/config"
	"github.com/couchcryptid/coastal-hazard-console/internal/observability"
)

// APIError is an HTTP-level failure: the server was reachable and rejected the
// request. Transport failures (DNS, refused connection, timeout) never produce
// an APIError; callers discriminate the two via errors.As.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hazard API: %d %s", e.StatusCode, e.Message)
}

// errorBody is the remote API's error envelope. FastAPI-style services use
// "detail"; others use "message".
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Client wraps all outbound requests to the Unified Hazard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a hazard API client from config.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.APITimeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, endpoint, out)
}

// postJSON issues a POST with a JSON-serialized body and decodes the response.
func (c *Client) postJSON(ctx context.Context, endpoint, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, endpoint, out)
}

// postMultipart issues a POST with a prepared multipart body. The content type
// carries the writer's boundary and is passed through untouched.
func (c *Client) postMultipart(ctx context.Context, endpoint, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	return c.do(req, endpoint, out)
}

// do executes the request, normalizes the error shape, and decodes a success
// response into out (skipped when out is nil).
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.APIErrors.WithLabelValues(endpoint, "transport").Inc()
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.APIErrors.WithLabelValues(endpoint, "http").Inc()
		return c.apiError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// apiError builds an APIError from a non-success response, preferring the
// server's human-readable message and keeping the raw body for diagnostics.
func (c *Client) apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	message := http.StatusText(resp.StatusCode)
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case eb.Detail != "":
			message = eb.Detail
		case eb.Message != "":
			message = eb.Message
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Body:       body,
	}
}
