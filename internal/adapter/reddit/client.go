// Package reddit implements the primary discussion source against the public
// Reddit JSON API.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Roach1197/The-Radar/internal/domain/radar"
)

const userAgent = "the-radar/1.0"

// commentFetchLimit bounds how many top-level comments are requested per
// post. The pipeline only keeps the first few real ones.
const commentFetchLimit = 5

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Reddit API.
type Client struct {
	httpClient HTTPClient
	baseURL    string
}

// listing is the envelope Reddit wraps every result set in.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Permalink   string `json:"permalink"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Stickied    bool   `json:"stickied"`
}

type comment struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

// New creates a Reddit client. A nil httpClient gets a 10s-timeout default;
// an empty baseURL targets the public API.
func New(httpClient HTTPClient, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = "https://www.reddit.com"
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// Name identifies this source on produced opportunities.
func (c *Client) Name() string { return "reddit" }

// Search returns up to limit posts matching query, ordered by Reddit's own
// hotness ranking, each with its first top-level comments attached.
// Placeholder "load more" comment nodes are dropped before returning.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]radar.Post, error) {
	if limit <= 0 {
		limit = 12
	}

	searchURL := fmt.Sprintf("%s/search.json?q=%s&sort=hot&t=week&limit=%d",
		c.baseURL, url.QueryEscape(query), limit)

	var result listing
	if err := c.getJSON(ctx, searchURL, &result); err != nil {
		return nil, fmt.Errorf("reddit search: %w", err)
	}

	var posts []radar.Post
	for _, child := range result.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var p post
		if err := json.Unmarshal(child.Data, &p); err != nil {
			continue
		}
		if p.Stickied {
			continue
		}

		rp := radar.Post{
			URL:        c.baseURL + p.Permalink,
			Title:      p.Title,
			Engagement: p.Score,
		}
		// A failed comment fetch degrades that post to no comments rather
		// than failing the whole search.
		if p.NumComments > 0 {
			rp.Comments, _ = c.topComments(ctx, p.ID)
		}
		posts = append(posts, rp)
	}
	return posts, nil
}

// topComments fetches the first top-level comments of a post.
func (c *Client) topComments(ctx context.Context, postID string) ([]radar.PostComment, error) {
	commentsURL := fmt.Sprintf("%s/comments/%s.json?limit=%d&depth=1&sort=top",
		c.baseURL, postID, commentFetchLimit)

	// The comments endpoint returns two listings: the post, then its
	// comment tree.
	var listings []listing
	if err := c.getJSON(ctx, commentsURL, &listings); err != nil {
		return nil, fmt.Errorf("reddit comments: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []radar.PostComment
	for _, child := range listings[1].Data.Children {
		// kind "more" is the "load more comments" placeholder, not a
		// real comment.
		if child.Kind != "t1" {
			continue
		}
		var cm comment
		if err := json.Unmarshal(child.Data, &cm); err != nil {
			continue
		}
		if cm.Body == "" {
			continue
		}
		comments = append(comments, radar.PostComment{Author: cm.Author, Body: cm.Body})
	}
	return comments, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

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
