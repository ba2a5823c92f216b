package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RESTGateway talks to the table service over its JSON HTTP API.
type RESTGateway struct {
	uri    string
	token  string
	client *http.Client
}

// RESTGatewayOption configures a REST gateway.
type RESTGatewayOption func(*RESTGateway)

// WithToken sets the bearer token for authentication.
func WithToken(token string) RESTGatewayOption {
	return func(g *RESTGateway) {
		g.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) RESTGatewayOption {
	return func(g *RESTGateway) {
		g.client = client
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) RESTGatewayOption {
	return func(g *RESTGateway) {
		g.client.Timeout = d
	}
}

// NewRESTGateway creates a new REST gateway client.
func NewRESTGateway(uri string, opts ...RESTGatewayOption) (*RESTGateway, error) {
	g := &RESTGateway{
		uri:    strings.TrimSuffix(uri, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// URI returns the base URI of the gateway.
func (g *RESTGateway) URI() string {
	return g.uri
}

// doRequest executes an HTTP request.
func (g *RESTGateway) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.uri+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// parseResponse parses an HTTP response.
func parseResponse[T any](resp *http.Response, v *T) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
				Code    int    `json:"code"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			return &APIError{
				StatusCode: resp.StatusCode,
				Code:       errResp.Error.Code,
				Message:    errResp.Error.Message,
			}
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// tablePath returns the API path for a table.
func tablePath(tableID string) string {
	return "/v1/tables/" + url.PathEscape(tableID)
}

// FetchTable returns the full columnar snapshot of a table.
func (g *RESTGateway) FetchTable(ctx context.Context, tableID string) (Snapshot, error) {
	resp, err := g.doRequest(ctx, http.MethodGet, tablePath(tableID)+"/data", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Columns Snapshot `json:"columns"`
	}
	if err := parseResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.Columns, nil
}

// Create inserts rows and returns the assigned row identifiers.
func (g *RESTGateway) Create(ctx context.Context, tableID string, records []Record) ([]int64, error) {
	body := map[string]any{
		"records": records,
	}

	resp, err := g.doRequest(ctx, http.MethodPost, tablePath(tableID)+"/records", body)
	if err != nil {
		return nil, err
	}

	var result struct {
		IDs []int64 `json:"ids"`
	}
	if err := parseResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.IDs, nil
}

// Update applies field updates to existing rows.
func (g *RESTGateway) Update(ctx context.Context, tableID string, records []Record) error {
	body := map[string]any{
		"records": records,
	}

	resp, err := g.doRequest(ctx, http.MethodPatch, tablePath(tableID)+"/records", body)
	if err != nil {
		return err
	}

	return parseResponse(resp, (*any)(nil))
}

// Destroy removes rows by identifier.
func (g *RESTGateway) Destroy(ctx context.Context, tableID string, rowIDs []int64) error {
	body := map[string]any{
		"ids": rowIDs,
	}

	resp, err := g.doRequest(ctx, http.MethodPost, tablePath(tableID)+"/records/delete", body)
	if err != nil {
		return err
	}

	return parseResponse(resp, (*any)(nil))
}

// FetchSelectedRecord returns a single row as a record, or nil when the row
// does not exist.
func (g *RESTGateway) FetchSelectedRecord(ctx context.Context, rowID int64) (Record, error) {
	resp, err := g.doRequest(ctx, http.MethodGet, fmt.Sprintf("/v1/records/%d", rowID), nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, nil
	}

	var result struct {
		Record Record `json:"record"`
	}
	if err := parseResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.Record, nil
}
