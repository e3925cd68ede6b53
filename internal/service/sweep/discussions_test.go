package sweep

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/Roach1197/The-Radar/internal/cache"
	"github.com/Roach1197/The-Radar/internal/domain/radar"
)

type fetcherDeps struct {
	primary    *fakeSource
	fallback   *fakeSource
	translator *fakeTranslator
	sentiment  *fakeSentiment
	clock      *fakeClock
}

func newTestFetcher(deps fetcherDeps, ttl time.Duration) *DiscussionFetcher {
	if deps.primary == nil {
		deps.primary = &fakeSource{name: "reddit"}
	}
	if deps.fallback == nil {
		deps.fallback = &fakeSource{name: "twitter"}
	}
	if deps.translator == nil {
		deps.translator = &fakeTranslator{}
	}
	if deps.sentiment == nil {
		deps.sentiment = &fakeSentiment{}
	}
	if deps.clock == nil {
		deps.clock = newFakeClock()
	}
	return NewDiscussionFetcher(
		deps.primary,
		deps.fallback,
		deps.translator,
		deps.sentiment,
		cache.New[[]radar.Opportunity](ttl, deps.clock.Now),
		DiscussionFetcherConfig{FetchLimit: 12},
	)
}

func TestFetchDedupByURL(t *testing.T) {
	primary := &fakeSource{name: "reddit", posts: map[string][]radar.Post{
		"": {
			{URL: "https://r/a", Title: "first", Engagement: 10},
			{URL: "https://r/a", Title: "same url different title", Engagement: 99},
			{URL: "https://r/b", Title: "second", Engagement: 5},
		},
	}}
	f := newTestFetcher(fetcherDeps{primary: primary}, time.Hour)

	ops := f.Fetch(context.Background(), "ai", radar.TrendSignal{})

	var urls []string
	for _, op := range ops {
		urls = append(urls, op.URL)
	}
	if diff := cmp.Diff([]string{"https://r/a", "https://r/b"}, urls); diff != "" {
		t.Errorf("dedup mismatch (-want +got):\n%s", diff)
	}
	if ops[0].Title != "first" {
		t.Errorf("dedup kept %q, want first occurrence", ops[0].Title)
	}
}

func TestFetchCommentProcessing(t *testing.T) {
	long := strings.Repeat("x", 400)
	primary := &fakeSource{name: "reddit", posts: map[string][]radar.Post{
		"": {
			{
				URL:        "https://r/a",
				Title:      "post",
				Engagement: 20,
				Comments: []radar.PostComment{
					{Author: "", Body: long},
					{Author: "bob", Body: "nice"},
					{Author: "eve", Body: "ok"},
					{Author: "extra", Body: "fourth comment is dropped"},
				},
			},
		},
	}}
	sentiment := &fakeSentiment{score: 0.5}
	f := newTestFetcher(fetcherDeps{primary: primary, sentiment: sentiment}, time.Hour)

	ops := f.Fetch(context.Background(), "ai", radar.TrendSignal{AvgInterest: 10, Direction: radar.DirectionRising})
	if len(ops) != 1 {
		t.Fatalf("got %d opportunities, want 1", len(ops))
	}
	op := ops[0]

	if len(op.Comments) != 3 {
		t.Fatalf("got %d comments, want first 3", len(op.Comments))
	}
	if op.Comments[0].Author != "Unknown" {
		t.Errorf("missing author = %q, want Unknown", op.Comments[0].Author)
	}
	if got := len(op.Comments[0].Body); got != 250 {
		t.Errorf("comment body length = %d, want truncated to 250", got)
	}
	if op.AvgSentiment != 0.5 {
		t.Errorf("avg sentiment = %v, want 0.5", op.AvgSentiment)
	}
	if want := 3.0 / 20.0; op.EngagementRatio != want {
		t.Errorf("engagement ratio = %v, want %v", op.EngagementRatio, want)
	}
	if op.TrendAvg != 10 || op.TrendDirection != radar.DirectionRising {
		t.Errorf("trend fields = (%d, %s), want (10, rising)", op.TrendAvg, op.TrendDirection)
	}
	// 0.4*20 + 0.3*10 + 0.2*0.5 + 0.1*0.15 = 11.115 -> 11
	if op.Score != 11 {
		t.Errorf("score = %d, want 11", op.Score)
	}
}

func TestFetchCommentTruncationKeepsValidUTF8(t *testing.T) {
	primary := &fakeSource{name: "reddit", posts: map[string][]radar.Post{
		"": {
			{
				URL:        "https://r/a",
				Title:      "post",
				Engagement: 5,
				Comments: []radar.PostComment{
					{Author: "yuki", Body: strings.Repeat("日", 300)},
				},
			},
		},
	}}
	f := newTestFetcher(fetcherDeps{primary: primary}, time.Hour)

	ops := f.Fetch(context.Background(), "ai", radar.TrendSignal{})
	if len(ops) != 1 || len(ops[0].Comments) != 1 {
		t.Fatalf("unexpected shape: %+v", ops)
	}
	body := ops[0].Comments[0].Body

	if got := utf8.RuneCountInString(body); got != 250 {
		t.Errorf("comment body = %d runes, want truncated to 250", got)
	}
	if !utf8.ValidString(body) {
		t.Error("truncated comment body is not valid UTF-8")
	}
}

func TestFetchTranslationAndSentimentDegrade(t *testing.T) {
	primary := &fakeSource{name: "reddit", posts: map[string][]radar.Post{
		"": {
			{URL: "https://r/a", Title: "post", Engagement: 1,
				Comments: []radar.PostComment{{Author: "a", Body: "original"}}},
		},
	}}
	f := newTestFetcher(fetcherDeps{
		primary:    primary,
		translator: &fakeTranslator{err: context.DeadlineExceeded},
		sentiment:  &fakeSentiment{err: context.DeadlineExceeded},
	}, time.Hour)

	ops := f.Fetch(context.Background(), "ai", radar.TrendSignal{})
	if len(ops) != 1 || len(ops[0].Comments) != 1 {
		t.Fatalf("unexpected shape: %+v", ops)
	}
	c := ops[0].Comments[0]
	if c.Body != "original" {
		t.Errorf("body = %q, want original text on translation failure", c.Body)
	}
	if c.Sentiment != 0 {
		t.Errorf("sentiment = %v, want neutral 0 on scoring failure", c.Sentiment)
	}
}

func TestFetchFallback(t *testing.T) {
	primary := &fakeSource{name: "reddit", err: radar.ErrSourceUnavailable}
	fallback := &fakeSource{name: "twitter", posts: map[string][]radar.Post{
		"": {
			{URL: "https://t/1", Title: "tweet one", Engagement: 30},
			{URL: "https://t/2", Title: "tweet two", Engagement: 7},
		},
	}}
	f := newTestFetcher(fetcherDeps{primary: primary, fallback: fallback}, time.Hour)

	ops := f.Fetch(context.Background(), "ai", radar.TrendSignal{AvgInterest: 90, Direction: radar.DirectionRising})

	want := []radar.Opportunity{
		{Title: "tweet one", URL: "https://t/1", Source: "twitter", Engagement: 30,
			TrendDirection: radar.DirectionUnknown, Score: 12, Degraded: true},
		{Title: "tweet two", URL: "https://t/2", Source: "twitter", Engagement: 7,
			TrendDirection: radar.DirectionUnknown, Score: 2, Degraded: true},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("fallback result mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchBothSourcesFailCachesEmpty(t *testing.T) {
	primary := &fakeSource{name: "reddit", err: radar.ErrSourceUnavailable}
	fallback := &fakeSource{name: "twitter", err: radar.ErrSourceUnavailable}
	f := newTestFetcher(fetcherDeps{primary: primary, fallback: fallback}, time.Hour)

	ops := f.Fetch(context.Background(), "ai", radar.TrendSignal{})
	if len(ops) != 0 {
		t.Fatalf("got %d opportunities, want empty degraded result", len(ops))
	}

	primaryCalls := primary.calls()
	f.Fetch(context.Background(), "ai", radar.TrendSignal{})
	if got := primary.calls(); got != primaryCalls {
		t.Errorf("empty result was not cached: primary called again (%d -> %d)", primaryCalls, got)
	}
}

func TestFetchCacheRoundTripAndExpiry(t *testing.T) {
	primary := &fakeSource{name: "reddit", posts: map[string][]radar.Post{
		"": {{URL: "https://r/a", Title: "post", Engagement: 3}},
	}}
	clock := newFakeClock()
	f := newTestFetcher(fetcherDeps{primary: primary, clock: clock}, 10*time.Minute)

	first := f.Fetch(context.Background(), "ai", radar.TrendSignal{})
	second := f.Fetch(context.Background(), "ai", radar.TrendSignal{})

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second fetch within TTL differs (-first +second):\n%s", diff)
	}
	if got := primary.calls(); got != 1 {
		t.Errorf("primary called %d times within TTL, want 1", got)
	}

	clock.Advance(11 * time.Minute)
	f.Fetch(context.Background(), "ai", radar.TrendSignal{})
	if got := primary.calls(); got != 2 {
		t.Errorf("primary called %d times after expiry, want 2", got)
	}
}

func TestFetchWithPacingCompletesAllItems(t *testing.T) {
	primary := &fakeSource{name: "reddit", posts: map[string][]radar.Post{
		"": {
			{URL: "https://r/a", Title: "one", Engagement: 10},
			{URL: "https://r/b", Title: "two", Engagement: 5},
		},
	}}
	f := NewDiscussionFetcher(
		primary,
		&fakeSource{name: "twitter"},
		&fakeTranslator{},
		&fakeSentiment{},
		cache.New[[]radar.Opportunity](time.Hour, newFakeClock().Now),
		DiscussionFetcherConfig{FetchLimit: 12, ItemsPerSecond: 1000},
	)

	ops := f.Fetch(context.Background(), "ai", radar.TrendSignal{})

	var titles []string
	for _, op := range ops {
		titles = append(titles, op.Title)
	}
	if diff := cmp.Diff([]string{"one", "two"}, titles); diff != "" {
		t.Errorf("paced fetch mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchNotifiesHandlersOnceOnFreshFetch(t *testing.T) {
	primary := &fakeSource{name: "reddit", posts: map[string][]radar.Post{
		"": {{URL: "https://r/a", Title: "post", Engagement: 200}},
	}}
	f := newTestFetcher(fetcherDeps{primary: primary}, time.Hour)

	var seen []radar.Opportunity
	f.RegisterOpportunityHandler(func(op radar.Opportunity) error {
		seen = append(seen, op)
		return nil
	})

	f.Fetch(context.Background(), "ai", radar.TrendSignal{})
	f.Fetch(context.Background(), "ai", radar.TrendSignal{}) // cache hit

	if len(seen) != 1 {
		t.Errorf("handler fired %d times, want 1 (cache hits must not re-fire)", len(seen))
	}
}
