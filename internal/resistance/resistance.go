package resistance

import (
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/hit"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/scoring"
)

// #region apply
// Apply runs both counter-pressure rules against the recent window. The rules
// are sequential and cumulative: the sum penalty is computed from the progress
// left by the strong-pair penalty, not from a snapshot. That ordering is part
// of the tuning and must not be parallelized.
func Apply(progress float64, recent []hit.Record, config Config) Result {
	result := Result{Progress: progress}

	// Rule 1: two consecutive strong hits.
	if len(recent) >= 2 {
		a := recent[len(recent)-2]
		b := recent[len(recent)-1]
		if a.Force > config.StrongHitThreshold && b.Force > config.StrongHitThreshold {
			result.Progress -= result.Progress * config.StrongHitsReductionPct / 100
			result.StrongPair = true
		}
	}

	// Rule 2: full recent window sums past the limit.
	if len(recent) == hit.RecentWindowSize {
		var sum float64
		for _, r := range recent {
			sum += r.Force
		}
		if sum > config.ThreeHitSumThreshold {
			result.Progress -= result.Progress * config.SumExceededReductionPct / 100
			result.SumExceeded = true
		}
	}

	result.Progress = scoring.ClampProgress(result.Progress)
	return result
}

// #endregion apply
