package radar

import (
	"time"
)

// TrendDirection is a coarse tag derived from the first and last samples of a
// short interest history.
type TrendDirection string

const (
	DirectionRising  TrendDirection = "rising"
	DirectionFalling TrendDirection = "falling"

	// DirectionUnknown marks items produced through the fallback source,
	// which carries no trend data at all.
	DirectionUnknown TrendDirection = "unknown"
)

// TrendSignal holds the search-interest picture for one topic.
type TrendSignal struct {
	Topic       string         `json:"topic"`
	AvgInterest int            `json:"avg_interest"`
	Direction   TrendDirection `json:"direction"`
	History     []int          `json:"history,omitempty"`
	Related     []string       `json:"related,omitempty"`
}

// Comment is one top-level discussion comment after translation and scoring.
type Comment struct {
	Author    string  `json:"author"`
	Body      string  `json:"body"`
	Sentiment float64 `json:"sentiment"`
}

// Opportunity is a scored candidate item: one discussion post combined with
// the topic's trend signal and its derived signals.
type Opportunity struct {
	Title           string         `json:"title"`
	URL             string         `json:"url"`
	Source          string         `json:"source"`
	Engagement      int            `json:"engagement"`
	Comments        []Comment      `json:"comments,omitempty"`
	AvgSentiment    float64        `json:"avg_sentiment"`
	EngagementRatio float64        `json:"engagement_ratio"`
	TrendAvg        int            `json:"trend_avg"`
	TrendDirection  TrendDirection `json:"trend_direction"`
	Score           int            `json:"score"`

	// Degraded marks items produced via the fallback path: reduced signal
	// completeness, not absence of data.
	Degraded bool `json:"degraded,omitempty"`
}

// SweepResult is the ranked outcome of a single-topic sweep.
type SweepResult struct {
	ID              string        `json:"id"`
	Topic           string        `json:"topic"`
	GeneratedAt     time.Time     `json:"generated_at"`
	Trend           TrendSignal   `json:"trend"`
	Opportunities   []Opportunity `json:"opportunities"`
	SuggestedTopics []string      `json:"suggested_topics,omitempty"`
}

// DeepSweepResult is a sweep with the full candidate list and the text
// analysis exposed.
type DeepSweepResult struct {
	ID            string              `json:"id"`
	Topic         string              `json:"topic"`
	GeneratedAt   time.Time           `json:"generated_at"`
	Trend         TrendSignal         `json:"trend"`
	Opportunities []Opportunity       `json:"opportunities"`
	Keywords      []string            `json:"keywords,omitempty"`
	Cooccurrence  map[string][]string `json:"cooccurrence,omitempty"`
}

// MultiSweepResult is the globally ranked outcome across several topics.
type MultiSweepResult struct {
	ID            string        `json:"id"`
	Topics        []string      `json:"topics"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Opportunities []Opportunity `json:"opportunities"`
}
