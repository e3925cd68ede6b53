package sweep

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/Roach1197/The-Radar/internal/cache"
	"github.com/Roach1197/The-Radar/internal/domain/radar"
	"github.com/Roach1197/The-Radar/internal/service/scoring"
)

const (
	// commentsPerItem is how many real top-level comments are kept per post.
	commentsPerItem = 3

	// commentMaxLen truncates comment bodies after translation, counted in
	// runes so a cut never splits a multi-byte character.
	commentMaxLen = 250

	// unknownAuthor labels comments whose author is absent.
	unknownAuthor = "Unknown"
)

// DiscussionFetcher produces scored opportunities for a topic from the
// primary discussion source, falling back to the secondary source when the
// primary fails outright. Results are cached per topic; a hit returns the
// cached sequence verbatim without contacting any source.
type DiscussionFetcher struct {
	primary    radar.DiscussionSource
	fallback   radar.DiscussionSource
	translator radar.Translator
	sentiment  radar.SentimentAnalyzer
	cache      *cache.Store[[]radar.Opportunity]

	// limiter paces per-item work inside one fetch to respect upstream
	// usage limits.
	limiter    *rate.Limiter
	fetchLimit int

	mu       sync.RWMutex
	handlers []func(radar.Opportunity) error
}

// DiscussionFetcherConfig contains tuning for the discussion fetcher.
type DiscussionFetcherConfig struct {
	// FetchLimit is how many candidate items are requested upstream.
	FetchLimit int

	// ItemsPerSecond throttles per-item processing; <= 0 disables pacing.
	ItemsPerSecond float64
}

// NewDiscussionFetcher creates a discussion fetcher.
func NewDiscussionFetcher(
	primary radar.DiscussionSource,
	fallback radar.DiscussionSource,
	translator radar.Translator,
	sentiment radar.SentimentAnalyzer,
	store *cache.Store[[]radar.Opportunity],
	cfg DiscussionFetcherConfig,
) *DiscussionFetcher {
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 12
	}
	limit := rate.Inf
	if cfg.ItemsPerSecond > 0 {
		limit = rate.Limit(cfg.ItemsPerSecond)
	}
	return &DiscussionFetcher{
		primary:    primary,
		fallback:   fallback,
		translator: translator,
		sentiment:  sentiment,
		cache:      store,
		limiter:    rate.NewLimiter(limit, 1),
		fetchLimit: cfg.FetchLimit,
	}
}

// RegisterOpportunityHandler registers a callback invoked once per
// opportunity produced by a fresh fetch. Cache hits do not re-fire handlers.
func (f *DiscussionFetcher) RegisterOpportunityHandler(h func(radar.Opportunity) error) {
	f.mu.Lock()
	f.handlers = append(f.handlers, h)
	f.mu.Unlock()
}

// Fetch returns the opportunities for an already-normalized topic, unsorted
// by score (the pipeline ranks later). Fetch never returns an error: a
// primary-source failure degrades to the fallback source, and a fallback
// failure degrades to an empty result. Whatever the outcome, the sequence is
// written to the cache — an empty result is still a result.
func (f *DiscussionFetcher) Fetch(ctx context.Context, topic string, trend radar.TrendSignal) []radar.Opportunity {
	if ops, ok := f.cache.Get(topic); ok {
		return ops
	}

	posts, degraded := f.search(ctx, topic)
	posts = dedupByURL(posts, f.fetchLimit)

	var ops []radar.Opportunity
	if degraded {
		ops = f.buildDegraded(posts)
	} else {
		ops = f.buildScored(ctx, posts, trend)
	}

	// An abandoned sweep must not persist a half-built sequence.
	if ctx.Err() != nil {
		return ops
	}

	f.cache.Put(topic, ops)
	f.notify(ops)
	return ops
}

// search queries the primary source with a short retry, then the fallback.
// The second result reports whether the items came from the fallback path.
func (f *DiscussionFetcher) search(ctx context.Context, topic string) ([]radar.Post, bool) {
	var posts []radar.Post

	backoff := retry.WithMaxRetries(1, retry.NewFibonacci(250*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		posts, err = f.primary.Search(ctx, topic, f.fetchLimit)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err == nil {
		return posts, false
	}

	log.Printf("primary source %s failed for %q, using fallback: %v", f.primary.Name(), topic, err)

	posts, err = f.fallback.Search(ctx, topic, f.fetchLimit)
	if err != nil {
		log.Printf("fallback source %s failed for %q: %v", f.fallback.Name(), topic, err)
		return nil, true
	}
	return posts, true
}

// buildScored turns primary-source posts into opportunities. Per-item work
// (comment translation and sentiment) is independent across items and runs
// concurrently; item starts are paced by the limiter. Output preserves the
// source's ordering.
func (f *DiscussionFetcher) buildScored(ctx context.Context, posts []radar.Post, trend radar.TrendSignal) []radar.Opportunity {
	ops := make([]radar.Opportunity, len(posts))

	var wg sync.WaitGroup
	for i, post := range posts {
		if err := f.limiter.Wait(ctx); err != nil {
			ops = ops[:i]
			break
		}
		wg.Add(1)
		go func(i int, post radar.Post) {
			defer wg.Done()
			ops[i] = f.buildOne(ctx, post, trend)
		}(i, post)
	}
	wg.Wait()
	return ops
}

func (f *DiscussionFetcher) buildOne(ctx context.Context, post radar.Post, trend radar.TrendSignal) radar.Opportunity {
	raw := post.Comments
	if len(raw) > commentsPerItem {
		raw = raw[:commentsPerItem]
	}

	comments := make([]radar.Comment, 0, len(raw))
	total := 0.0
	for _, rc := range raw {
		c := f.processComment(ctx, rc)
		total += c.Sentiment
		comments = append(comments, c)
	}

	avgSentiment := 0.0
	if len(comments) > 0 {
		avgSentiment = total / float64(len(comments))
	}
	ratio := engagementRatio(len(comments), post.Engagement)

	return radar.Opportunity{
		Title:           post.Title,
		URL:             post.URL,
		Source:          f.primary.Name(),
		Engagement:      post.Engagement,
		Comments:        comments,
		AvgSentiment:    avgSentiment,
		EngagementRatio: ratio,
		TrendAvg:        trend.AvgInterest,
		TrendDirection:  trend.Direction,
		Score:           scoring.Score(float64(post.Engagement), float64(trend.AvgInterest), avgSentiment, ratio),
	}
}

// processComment translates, truncates, and scores one comment. Translation
// failure falls back to the original text; sentiment failure degrades to
// neutral.
func (f *DiscussionFetcher) processComment(ctx context.Context, rc radar.PostComment) radar.Comment {
	author := rc.Author
	if author == "" {
		author = unknownAuthor
	}

	body := rc.Body
	if translated, err := f.translator.Translate(ctx, body); err == nil && translated != "" {
		body = translated
	}
	if runes := []rune(body); len(runes) > commentMaxLen {
		body = string(runes[:commentMaxLen])
	}

	polarity, err := f.sentiment.Polarity(ctx, body)
	if err != nil {
		polarity = 0
	}

	return radar.Comment{Author: author, Body: body, Sentiment: polarity}
}

// buildDegraded turns fallback-source posts into degraded-confidence
// opportunities: zero trend, unknown direction, zero sentiment, no comments.
func (f *DiscussionFetcher) buildDegraded(posts []radar.Post) []radar.Opportunity {
	ops := make([]radar.Opportunity, 0, len(posts))
	for _, post := range posts {
		ops = append(ops, radar.Opportunity{
			Title:          post.Title,
			URL:            post.URL,
			Source:         f.fallback.Name(),
			Engagement:     post.Engagement,
			TrendDirection: radar.DirectionUnknown,
			Score:          scoring.Score(float64(post.Engagement), 0, 0, 0),
			Degraded:       true,
		})
	}
	return ops
}

func (f *DiscussionFetcher) notify(ops []radar.Opportunity) {
	f.mu.RLock()
	handlers := make([]func(radar.Opportunity) error, len(f.handlers))
	copy(handlers, f.handlers)
	f.mu.RUnlock()

	for _, h := range handlers {
		for _, op := range ops {
			if err := h(op); err != nil {
				log.Printf("opportunity handler: %v", err)
			}
		}
	}
}

// dedupByURL keeps the first occurrence of each URL, capped at limit,
// preserving source order. Dedup is by URL, not title.
func dedupByURL(posts []radar.Post, limit int) []radar.Post {
	seen := make(map[string]bool, len(posts))
	var out []radar.Post
	for _, p := range posts {
		if seen[p.URL] {
			continue
		}
		seen[p.URL] = true
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

func engagementRatio(commentCount, engagement int) float64 {
	if engagement < 1 {
		engagement = 1
	}
	return float64(commentCount) / float64(engagement)
}
