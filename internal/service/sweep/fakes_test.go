package sweep

import (
	"context"
	"sync"
	"time"

	"github.com/Roach1197/The-Radar/internal/domain/radar"
)

// fakeClock drives cache expiry deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeTrendSource struct {
	mu            sync.Mutex
	series        []int
	related       []string
	interestErr   error
	relatedErr    error
	interestCalls int
}

func (f *fakeTrendSource) InterestOverTime(_ context.Context, _ string, _ int) ([]int, error) {
	f.mu.Lock()
	f.interestCalls++
	f.mu.Unlock()
	return f.series, f.interestErr
}

func (f *fakeTrendSource) RelatedQueries(_ context.Context, _ string) ([]string, error) {
	return f.related, f.relatedErr
}

func (f *fakeTrendSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interestCalls
}

type fakeSource struct {
	mu    sync.Mutex
	name  string
	posts map[string][]radar.Post // by query; nil key "" serves all
	err   error
	count int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(_ context.Context, query string, _ int) ([]radar.Post, error) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if posts, ok := f.posts[query]; ok {
		return posts, nil
	}
	return f.posts[""], nil
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

type fakeTranslator struct {
	prefix string
	err    error
}

func (f *fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.prefix + text, nil
}

type fakeSentiment struct {
	score float64
	err   error
}

func (f *fakeSentiment) Polarity(_ context.Context, _ string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.score, nil
}
