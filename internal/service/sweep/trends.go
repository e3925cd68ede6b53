package sweep

import (
	"context"

	"github.com/Roach1197/The-Radar/internal/cache"
	"github.com/Roach1197/The-Radar/internal/domain/radar"
)

// trendWindowDays is the fixed recent window requested from the trend source.
const trendWindowDays = 7

// TrendFetcher retrieves per-topic search-interest signals, cache-first.
// Trend data changes slowly, so its cache carries a longer TTL than the
// discussion cache.
type TrendFetcher struct {
	source radar.TrendSource
	cache  *cache.Store[radar.TrendSignal]
}

// NewTrendFetcher creates a trend fetcher backed by source and store.
func NewTrendFetcher(source radar.TrendSource, store *cache.Store[radar.TrendSignal]) *TrendFetcher {
	return &TrendFetcher{source: source, cache: store}
}

// Fetch returns the trend signal for an already-normalized topic. A live
// cache entry is returned unchanged. On miss the source is queried; no data
// or a source failure degrades to the zero-value signal (avg 0, direction
// falling, empty history and related terms). Related queries are only
// fetched when the interest series yields data. Fetch never returns an
// error: every outcome is a usable signal, and it is written to the cache.
func (f *TrendFetcher) Fetch(ctx context.Context, topic string) radar.TrendSignal {
	if sig, ok := f.cache.Get(topic); ok {
		return sig
	}

	sig := radar.TrendSignal{
		Topic:     topic,
		Direction: radar.DirectionFalling,
	}

	series, err := f.source.InterestOverTime(ctx, topic, trendWindowDays)
	if err == nil && len(series) > 0 {
		sig.AvgInterest = average(series)
		sig.Direction = direction(series)
		sig.History = series

		if related, err := f.source.RelatedQueries(ctx, topic); err == nil {
			sig.Related = related
		}
	}

	f.cache.Put(topic, sig)
	return sig
}

func average(series []int) int {
	sum := 0
	for _, v := range series {
		sum += v
	}
	return sum / len(series)
}

// direction compares the latest sample to the earliest. A flat series
// resolves to falling.
func direction(series []int) radar.TrendDirection {
	if series[len(series)-1] > series[0] {
		return radar.DirectionRising
	}
	return radar.DirectionFalling
}
