// Package adminapi provides a client for the Anthropic Admin API usage and
// cost report endpoints, and assembles snapshots that combine remote
// figures with locally computed supplemental data.
package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	requestTimeout   = 30 * time.Second
	maxBodySize      = 4 << 20 // 4 MB
)

var (
	// ErrUnauthorized indicates the admin key is invalid or lacks access.
	ErrUnauthorized = errors.New("adminapi: unauthorized (check admin key)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("adminapi: rate limited")
)

// Client fetches organization usage and cost reports.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the given admin key. Returns nil if the
// key is empty. baseURL overrides the production endpoint when non-empty
// (used in tests).
func NewClient(apiKey, baseURL string) *Client {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		// The report endpoints are expensive server-side; keep well under
		// the documented request ceiling.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// FetchUsageReport fetches today's token usage grouped by model. Only the
// first page is returned; has_more is not followed.
func (c *Client) FetchUsageReport(ctx context.Context, startingAt, endingAt string) (*UsageReportResponse, error) {
	q := url.Values{}
	q.Set("starting_at", startingAt)
	if endingAt != "" {
		q.Set("ending_at", endingAt)
	}
	q.Set("bucket_width", "1d")
	q.Add("group_by[]", "model")

	body, err := c.get(ctx, "/v1/organizations/usage_report/messages", q)
	if err != nil {
		return nil, err
	}

	var report UsageReportResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("adminapi: parsing usage report: %w", err)
	}
	return &report, nil
}

// FetchCostReport fetches today's costs. Amounts are decimal strings in
// cents. Only the first page is returned.
func (c *Client) FetchCostReport(ctx context.Context, startingAt, endingAt string) (*CostReportResponse, error) {
	q := url.Values{}
	q.Set("starting_at", startingAt)
	if endingAt != "" {
		q.Set("ending_at", endingAt)
	}
	q.Set("bucket_width", "1d")
	q.Add("group_by[]", "description")

	body, err := c.get(ctx, "/v1/organizations/cost_report", q)
	if err != nil {
		return nil, err
	}

	var report CostReportResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("adminapi: parsing cost report: %w", err)
	}
	return &report, nil
}

// Validate makes a minimal usage report request to check the key.
func (c *Client) Validate(ctx context.Context) error {
	q := url.Values{}
	q.Set("starting_at", time.Now().UTC().Add(-time.Hour).Format("2006-01-02T15:04:05Z"))
	q.Set("bucket_width", "1h")
	q.Set("limit", "1")

	_, err := c.get(ctx, "/v1/organizations/usage_report/messages", q)
	return err
}

// get performs an authenticated GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("adminapi: waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("adminapi: creating request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adminapi: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("adminapi: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("adminapi: reading response: %w", err)
	}
	return body, nil
}
