// Package apiclient provides an HTTP client for the estate office REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

// Resources are the entity collections served under /api.
var Resources = []string{"contacts", "clients", "agents", "estates", "contracts", "requests", "offers"}

// StatsKinds are the dashboard aggregates served under /api/dashboard/stats.
var StatsKinds = []string{"overall", "clients", "estates", "contracts", "requests", "offers", "recent-activities"}

// IsResource reports whether name is a known entity collection.
func IsResource(name string) bool {
	return slices.Contains(Resources, name)
}

// Record is one entity as returned by the API, keyed by JSON field name.
type Record map[string]any

// Error is a non-2xx response from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client is an HTTP client for the estate office API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// List returns every record in resource.
func (c *Client) List(ctx context.Context, resource string) ([]Record, error) {
	if !IsResource(resource) {
		return nil, fmt.Errorf("unknown resource %q", resource)
	}
	var records []Record
	if err := c.get(ctx, "/api/"+resource, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Get returns one record by ID.
func (c *Client) Get(ctx context.Context, resource string, id int64) (Record, error) {
	if !IsResource(resource) {
		return nil, fmt.Errorf("unknown resource %q", resource)
	}
	var record Record
	if err := c.get(ctx, fmt.Sprintf("/api/%s/%d", resource, id), &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Create posts body to resource and returns the new ID.
func (c *Client) Create(ctx context.Context, resource string, body any) (int64, error) {
	if !IsResource(resource) {
		return 0, fmt.Errorf("unknown resource %q", resource)
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/"+resource, body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// Delete removes one record by ID and returns the server's message.
func (c *Client) Delete(ctx context.Context, resource string, id int64) (string, error) {
	if !IsResource(resource) {
		return "", fmt.Errorf("unknown resource %q", resource)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/%s/%d", resource, id), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Stats returns one dashboard aggregate as raw JSON.
func (c *Client) Stats(ctx context.Context, kind string) (json.RawMessage, error) {
	if !slices.Contains(StatsKinds, kind) {
		return nil, fmt.Errorf("unknown statistics %q", kind)
	}
	var raw json.RawMessage
	if err := c.get(ctx, "/api/dashboard/stats/"+kind, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Health checks that the server and its database are reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.send(ctx, http.MethodGet, path, nil, result)
}

// send performs a request with an optional JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result any) (err error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing response body: %w", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &Error{Status: resp.StatusCode, Message: errResp.Error}
		}
		return &Error{Status: resp.StatusCode, Message: "server error: " + http.StatusText(resp.StatusCode)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
