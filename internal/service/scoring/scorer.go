// Package scoring combines per-item signals into a single ranking number.
package scoring

import "math"

// Signal weights. Engagement and trend dominate; sentiment, being in [-1,1],
// contributes a small signed correction.
const (
	weightEngagement = 0.4
	weightTrend      = 0.3
	weightSentiment  = 0.2
	weightRatio      = 0.1
)

// Score computes the opportunity score as a weighted sum truncated toward
// zero (Go's int conversion). NaN and infinite inputs are coerced to 0 so
// partial signals degrade rather than poison the ranking. Deterministic:
// same inputs always yield the same score.
func Score(engagement, trendAvg, sentiment, engagementRatio float64) int {
	raw := weightEngagement*finite(engagement) +
		weightTrend*finite(trendAvg) +
		weightSentiment*finite(sentiment) +
		weightRatio*finite(engagementRatio)
	return int(raw)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
