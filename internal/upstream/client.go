// Package upstream implements the client for the remote math API that
// performs the actual computation.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Envelope is the decoded JSON response of the upstream API. Every endpoint
// answers with an object carrying at least a "result" key; its value type
// depends on the operation.
type Envelope map[string]any

// Result returns the value of the "result" field, or nil when absent.
func (e Envelope) Result() any {
	return e["result"]
}

// Error is returned when the upstream API answers with status >= 400. The
// raw response body is carried so callers can surface the upstream message.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

// Client posts operation payloads to the remote math API. It holds no
// mutable state and is safe for overlapping concurrent requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client for the given base URL. Timeout and pooling
// policy belong to httpClient; when nil, a client with an otelhttp-traced
// default transport is used.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Post sends payload as JSON to endpoint and decodes the JSON response,
// ignoring the content type the server declares. A status >= 400 yields
// *Error; transport failures and undecodable bodies are wrapped. Upstream
// failures are never retried here.
func (c *Client) Post(ctx context.Context, endpoint string, payload map[string]any) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{Status: resp.StatusCode, Body: string(raw)}
	}

	var data Envelope
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return data, nil
}
