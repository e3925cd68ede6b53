// Package twitter implements the fallback discussion source over the Twitter
// v2 recent-search API. Best effort: it yields engagement-only posts with no
// comments.
package twitter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"github.com/Roach1197/The-Radar/internal/domain/radar"
)

type authorizer struct {
	token string
}

func (a authorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// Client wraps the Twitter API client behind the discussion-source contract.
type Client struct {
	api *twitter.Client
}

// New creates a Twitter fallback client using bearer-token auth.
func New(bearerToken, host string) *Client {
	if host == "" {
		host = "https://api.twitter.com"
	}
	return &Client{
		api: &twitter.Client{
			Authorizer: authorizer{token: bearerToken},
			Client:     &http.Client{Timeout: 10 * time.Second},
			Host:       host,
		},
	}
}

// Name identifies this source on produced opportunities.
func (c *Client) Name() string { return "twitter" }

// Search returns recent tweets matching query as engagement-only posts.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]radar.Post, error) {
	if limit < 10 {
		limit = 10 // recent-search API minimum
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults:  limit,
		TweetFields: []twitter.TweetField{twitter.TweetFieldPublicMetrics},
	}

	resp, err := c.api.TweetRecentSearch(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: twitter search: %v", radar.ErrSourceUnavailable, err)
	}
	if resp.Raw == nil {
		return nil, nil
	}

	var posts []radar.Post
	for _, tweet := range resp.Raw.Tweets {
		if tweet == nil {
			continue
		}
		engagement := 0
		if tweet.PublicMetrics != nil {
			engagement = tweet.PublicMetrics.Likes
		}
		posts = append(posts, radar.Post{
			URL:        "https://twitter.com/i/web/status/" + tweet.ID,
			Title:      tweet.Text,
			Engagement: engagement,
		})
	}
	return posts, nil
}
