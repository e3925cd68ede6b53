// Package gtrends implements the trend source against a Google-Trends-style
// interest service.
package gtrends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Roach1197/The-Radar/internal/domain/radar"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the trend interest service.
type Client struct {
	httpClient HTTPClient
	baseURL    string
}

type interestResponse struct {
	Series []int `json:"series"`
}

type relatedResponse struct {
	Queries []string `json:"queries"`
}

// New creates a trend client for the given service base URL. A nil httpClient
// gets a 10s-timeout default.
func New(httpClient HTTPClient, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// InterestOverTime returns the interest series for topic over the last days
// days. An empty series means the service has no data for the topic; that is
// not an error.
func (c *Client) InterestOverTime(ctx context.Context, topic string, days int) ([]int, error) {
	reqURL := fmt.Sprintf("%s/interest?q=%s&days=%d", c.baseURL, url.QueryEscape(topic), days)

	var resp interestResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("interest over time: %w", err)
	}
	return resp.Series, nil
}

// RelatedQueries returns query strings the service associates with topic.
func (c *Client) RelatedQueries(ctx context.Context, topic string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/related?q=%s", c.baseURL, url.QueryEscape(topic))

	var resp relatedResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("related queries: %w", err)
	}
	return resp.Queries, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", radar.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", radar.ErrSourceUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", radar.ErrSourceUnavailable, err)
	}
	return nil
}
