// Package translate implements the translation collaborator over a
// LibreTranslate-style HTTP service.
package translate

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

// Client translates text into the working language. Callers are expected to
// fall back to the original text when Translate returns an error; no failure
// here is ever fatal to a fetch.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	target     string
}

type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type response struct {
	TranslatedText string `json:"translatedText"`
}

// New creates a translation client. target defaults to English.
func New(httpClient HTTPClient, baseURL, target string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if target == "" {
		target = "en"
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, target: target}
}

// Translate returns text in the working language.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(request{Q: text, Source: "auto", Target: c.target})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: status %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("translate: decode: %w", err)
	}
	return out.TranslatedText, nil
}
