// Package algolia provides a minimal client for the two Algolia REST
// endpoints this tool needs: the record count of an index and the recent
// build logs for it.
package algolia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 10 * time.Second

// Client queries the Algolia API for a single index.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	apiKey     string
	indexName  string
}

// ClientOptions configures a Client.
type ClientOptions struct {
	AppID     string
	APIKey    string
	IndexName string

	// Timeout is the per-request timeout (DefaultTimeout if zero).
	Timeout time.Duration

	// BaseURL overrides the derived https://<app-id>-dsn.algolia.net/1/
	// endpoint. Used by tests.
	BaseURL string
}

// NewClient creates a client bound to one application and index.
func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s-dsn.algolia.net/1/", opts.AppID)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		appID:      opts.AppID,
		apiKey:     opts.APIKey,
		indexName:  opts.IndexName,
	}
}

// TotalRecords returns the current record count of the index.
//
// It issues an empty query with hitsPerPage=0 and reads nbHits, so no hit
// payloads cross the wire.
func (c *Client) TotalRecords(ctx context.Context) (int64, error) {
	endpoint := fmt.Sprintf("%sindexes/%s/query", c.baseURL, url.PathEscape(c.indexName))
	body := `{"params":"hitsPerPage=0&getRankingInfo=0&query=*"}`

	data, err := c.do(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("querying record count: %w", err)
	}

	var result struct {
		NbHits int64 `json:"nbHits"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return 0, fmt.Errorf("decoding count response: %w", err)
	}
	return result.NbHits, nil
}

// RecentLogs returns the most recent page of build logs for the index,
// newest last. The logs endpoint has no since-cursor, so callers filter by
// timestamp themselves.
func (c *Client) RecentLogs(ctx context.Context) ([]LogEntry, error) {
	endpoint := fmt.Sprintf("%slogs?indexName=%s&type=build&offset=1&length=1000",
		c.baseURL, url.QueryEscape(c.indexName))

	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching logs: %w", err)
	}

	var result struct {
		Logs []LogEntry `json:"logs"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding logs response: %w", err)
	}
	return result.Logs, nil
}

// do executes one request with the Algolia auth headers and classifies the
// response status. The API key is never included in returned errors.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("x-algolia-application-id", c.appID)
	req.Header.Set("x-algolia-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q", ErrIndexNotFound, c.indexName)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return data, nil
}
