// Package scoring computes the 0-100 priority score of a prospect. Scoring is
// a strategy, independent of which source produced the record, so every
// adapter path shares one implementation instead of re-deriving it.
package scoring

import (
	"context"

	"prospector_backend/internal/prospect"
)

// Result is the outcome of scoring one prospect. Score is always in [0,100];
// AIPowered is true only when the oracle's value was actually used.
type Result struct {
	Score     int
	AIPowered bool
	Forecast  *prospect.Forecast
}

// Strategy scores a normalized prospect. Implementations never fail: bad
// input degrades to a deterministic score, not an error.
type Strategy interface {
	Score(ctx context.Context, p prospect.Prospect) Result
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
