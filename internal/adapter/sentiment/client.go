// Package sentiment implements the polarity-scoring collaborator over an
// HTTP analysis service.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client maps free text to a polarity score. Callers degrade to a neutral
// 0.0 when Polarity returns an error.
type Client struct {
	httpClient HTTPClient
	baseURL    string
}

type request struct {
	Text string `json:"text"`
}

type response struct {
	Polarity float64 `json:"polarity"`
}

// New creates a sentiment client for the given service base URL.
func New(httpClient HTTPClient, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// Polarity returns a score in [-1, 1] for text, negative to positive. The
// result is clamped so a misbehaving service cannot push scores out of range.
func (c *Client) Polarity(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(request{Text: text})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/polarity", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("polarity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("polarity: status %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("polarity: decode: %w", err)
	}

	p := out.Polarity
	if p > 1 {
		p = 1
	}
	if p < -1 {
		p = -1
	}
	return p, nil
}
