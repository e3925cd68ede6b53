// Package sweep orchestrates trend and discussion fetching into ranked,
// capped opportunity sets.
package sweep

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Roach1197/The-Radar/internal/domain/radar"
	"github.com/Roach1197/The-Radar/internal/service/keywords"
)

const (
	// topOpportunities caps a single-topic sweep's ranked list.
	topOpportunities = 5

	// multiSweepCap caps the combined ranked list across topics.
	multiSweepCap = 12

	// maxSuggestedTopics caps the suggested-next-topics list.
	maxSuggestedTopics = 6

	// maxConcurrentTopics bounds per-topic fan-out in a multi-topic sweep.
	maxConcurrentTopics = 4
)

// Pipeline is the aggregation pipeline: one sweep is a pure function of the
// topic plus current cache and external-source state, idempotent within a
// cache TTL window.
type Pipeline struct {
	trends      *TrendFetcher
	discussions *DiscussionFetcher
	now         func() time.Time
}

// NewPipeline creates a pipeline over the two fetchers. now is the clock
// stamped onto results; nil means time.Now.
func NewPipeline(trends *TrendFetcher, discussions *DiscussionFetcher, now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{trends: trends, discussions: discussions, now: now}
}

// NormalizeTopic maps user input to the canonical topic form used for both
// cache keys and source queries. Returns ErrInvalidTopic for input that is
// empty after trimming.
func NormalizeTopic(s string) (string, error) {
	topic := strings.ToLower(strings.TrimSpace(s))
	if topic == "" {
		return "", radar.ErrInvalidTopic
	}
	return topic, nil
}

// SplitTopics splits comma-delimited input into normalized topics, dropping
// fragments that are empty after trimming. Returns ErrInvalidTopic when
// nothing survives.
func SplitTopics(input string) ([]string, error) {
	var topics []string
	for _, frag := range strings.Split(input, ",") {
		topic, err := NormalizeTopic(frag)
		if err != nil {
			continue
		}
		topics = append(topics, topic)
	}
	if len(topics) == 0 {
		return nil, radar.ErrInvalidTopic
	}
	return topics, nil
}

// Sweep performs a single-topic sweep: trend signal, discussions ranked
// descending by opportunity score (stable, ties keep source order), top-N
// opportunities, and suggested next topics assembled from related trend
// terms followed by keywords extracted from the titles.
func (p *Pipeline) Sweep(ctx context.Context, topic string) (radar.SweepResult, error) {
	topic, err := NormalizeTopic(topic)
	if err != nil {
		return radar.SweepResult{}, err
	}

	trend, ops := p.sweepTopic(ctx, topic)

	titles := make([]string, 0, len(ops))
	for _, op := range ops {
		titles = append(titles, op.Title)
	}
	terms := keywords.Extract(titles)

	if len(ops) > topOpportunities {
		ops = ops[:topOpportunities]
	}

	return radar.SweepResult{
		ID:              uuid.New().String(),
		Topic:           topic,
		GeneratedAt:     p.now(),
		Trend:           trend,
		Opportunities:   ops,
		SuggestedTopics: suggestTopics(trend.Related, terms),
	}, nil
}

// DeepSweep is a sweep with a different presentation: the full candidate
// list plus the extracted keywords and their co-occurrence index.
func (p *Pipeline) DeepSweep(ctx context.Context, topic string) (radar.DeepSweepResult, error) {
	topic, err := NormalizeTopic(topic)
	if err != nil {
		return radar.DeepSweepResult{}, err
	}

	trend, ops := p.sweepTopic(ctx, topic)

	titles := make([]string, 0, len(ops))
	for _, op := range ops {
		titles = append(titles, op.Title)
	}

	return radar.DeepSweepResult{
		ID:            uuid.New().String(),
		Topic:         topic,
		GeneratedAt:   p.now(),
		Trend:         trend,
		Opportunities: ops,
		Keywords:      keywords.Extract(titles),
		Cooccurrence:  keywords.Cooccurrence(titles),
	}, nil
}

// MultiSweep splits comma-delimited input into topics, sweeps each with
// bounded concurrency, and globally ranks the combined discussions. A
// failure in one topic degrades that topic to an empty contribution without
// aborting the rest. Unordered completion does not affect output ordering:
// results are concatenated in input order before the final sort.
func (p *Pipeline) MultiSweep(ctx context.Context, input string) (radar.MultiSweepResult, error) {
	topics, err := SplitTopics(input)
	if err != nil {
		return radar.MultiSweepResult{}, err
	}

	perTopic := make([][]radar.Opportunity, len(topics))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentTopics)
	for i, topic := range topics {
		i, topic := i, topic
		g.Go(func() error {
			_, ops := p.sweepTopic(gctx, topic)
			perTopic[i] = ops
			return nil
		})
	}
	_ = g.Wait() // per-topic work never errors; failures degrade to empty

	var combined []radar.Opportunity
	for _, ops := range perTopic {
		combined = append(combined, ops...)
	}
	sortByScore(combined)
	if len(combined) > multiSweepCap {
		combined = combined[:multiSweepCap]
	}

	return radar.MultiSweepResult{
		ID:            uuid.New().String(),
		Topics:        topics,
		GeneratedAt:   p.now(),
		Opportunities: combined,
	}, nil
}

// sweepTopic runs the per-topic core: trend fetch feeding the discussion
// fetch, then a stable descending sort by score.
func (p *Pipeline) sweepTopic(ctx context.Context, topic string) (radar.TrendSignal, []radar.Opportunity) {
	trend := p.trends.Fetch(ctx, topic)
	ops := p.discussions.Fetch(ctx, topic, trend)

	sorted := make([]radar.Opportunity, len(ops))
	copy(sorted, ops)
	sortByScore(sorted)
	return trend, sorted
}

func sortByScore(ops []radar.Opportunity) {
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Score > ops[j].Score
	})
}

// suggestTopics merges related trend terms and extracted keywords, related
// terms first, deduplicated, capped at maxSuggestedTopics.
func suggestTopics(related, terms []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range append(append([]string{}, related...), terms...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == maxSuggestedTopics {
			break
		}
	}
	return out
}
