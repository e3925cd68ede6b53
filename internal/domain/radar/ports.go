package radar

import (
	"context"
	"errors"
)

// Sentinel errors for the pipeline's degrade-and-continue logic. A source
// adapter must return ErrSourceUnavailable (wrapped or bare) for network,
// rate-limit, and malformed-response failures so callers can distinguish
// "the source is down" from "the source found nothing".
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrInvalidTopic      = errors.New("invalid topic")
)

// Post is one raw discussion item as returned by a source adapter. Comments
// are the source's top-level comments, already stripped of placeholder
// "load more" nodes.
type Post struct {
	URL        string
	Title      string
	Engagement int
	Comments   []PostComment
}

// PostComment is an untranslated, unscored comment.
type PostComment struct {
	Author string
	Body   string
}

// DiscussionSource returns candidate posts for a query, pre-ordered by the
// source's own relevance ranking. Zero results is a nil slice with a nil
// error, never an ErrSourceUnavailable.
type DiscussionSource interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Post, error)
}

// TrendSource provides search-interest data. An empty series means "no data",
// not failure.
type TrendSource interface {
	InterestOverTime(ctx context.Context, topic string, days int) ([]int, error)
	RelatedQueries(ctx context.Context, topic string) ([]string, error)
}

// Translator converts text to the working language. Implementations must not
// propagate failure; callers fall back to the original text on error anyway.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// SentimentAnalyzer maps text to a polarity in [-1, 1].
type SentimentAnalyzer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// Sweeper is the contract the pipeline exposes to request handlers. Each
// call is a pure function of topic plus current cache and external-source
// state, idempotent within a cache TTL window.
type Sweeper interface {
	Sweep(ctx context.Context, topic string) (SweepResult, error)
	MultiSweep(ctx context.Context, topics string) (MultiSweepResult, error)
	DeepSweep(ctx context.Context, topic string) (DeepSweepResult, error)
}
